package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/yeremiapane/kitchenlog/config"
	"github.com/yeremiapane/kitchenlog/utils"
)

// AccessController exchanges the shared passphrase for a short-lived access
// token. The gate keeps casual visitors out of the forms; it does not identify
// anyone.
type AccessController struct {
	Access config.AccessConfig
}

func NewAccessController(access config.AccessConfig) *AccessController {
	return &AccessController{Access: access}
}

func (ac *AccessController) Unlock(c *gin.Context) {
	if !ac.Access.Enabled() {
		utils.RespondJSON(c, http.StatusOK, "Access gate disabled", gin.H{"required": false})
		return
	}

	var body struct {
		Passphrase string `json:"passphrase" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword(ac.Access.PassphraseHash, []byte(body.Passphrase)); err != nil {
		utils.ErrorLogger.WithField("client_ip", c.ClientIP()).Warn("Rejected access passphrase")
		utils.RespondError(c, http.StatusUnauthorized, errors.New("incorrect passphrase"))
		return
	}

	token, expires, err := utils.GenerateAccessToken(ac.Access.TokenSecret, ac.Access.TokenTTL)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Access granted", gin.H{
		"required":   true,
		"token":      token,
		"expires_at": expires,
	})
}
