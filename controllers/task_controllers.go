package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/kitchenlog/models"
	"github.com/yeremiapane/kitchenlog/pipeline"
	"github.com/yeremiapane/kitchenlog/services"
	"github.com/yeremiapane/kitchenlog/utils"
)

type TaskController struct {
	Records   *services.RecordService
	Formatter pipeline.Formatter
}

func NewTaskController(records *services.RecordService, f pipeline.Formatter) *TaskController {
	return &TaskController{Records: records, Formatter: f}
}

type taskView struct {
	models.CleaningTask
	CleaningTimeDisplay string `json:"cleaning_time_display"`
}

type areaGroup struct {
	Area  string     `json:"area"`
	Count int        `json:"count"`
	Tasks []taskView `json:"tasks"`
}

type departmentGroup struct {
	Department string      `json:"department"`
	Count      int         `json:"count"`
	Tasks      []taskView  `json:"tasks"`
	Areas      []areaGroup `json:"areas,omitempty"`
}

type taskInput struct {
	Department    string `json:"department"`
	CleaningTime  string `json:"cleaning_time"`
	CleanedBy     string `json:"cleaned_by"`
	AreaEquipment string `json:"area_equipment"`
	CleaningType  string `json:"cleaning_type"`
	Comments      string `json:"comments"`
}

// GetTasks lists tasks matching ?department=&area=&start=&end=, grouped by
// department. ?group=area adds a second level by area or equipment.
func (tc *TaskController) GetTasks(c *gin.Context) {
	criteria, err := criteriaFromQuery(c, "department", "area")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	criteria.Location = tc.Formatter.Location

	levels := []pipeline.Level[models.CleaningTask]{pipeline.DepartmentLevel()}
	switch group := c.Query("group"); group {
	case "", "department":
	case "area":
		levels = append(levels, pipeline.AreaLevel())
	default:
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown group %q: use department or area", group))
		return
	}

	filtered := pipeline.Filter(tc.Records.Tasks(c.Request.Context()), criteria)
	groups := pipeline.GroupBy(filtered, levels...)

	out := make([]departmentGroup, 0, len(groups))
	for _, g := range groups {
		dg := departmentGroup{Department: g.Key, Count: len(g.Records), Tasks: tc.views(g.Records)}
		for _, area := range g.Children {
			dg.Areas = append(dg.Areas, areaGroup{Area: area.Key, Count: len(area.Records), Tasks: tc.views(area.Records)})
		}
		out = append(out, dg)
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaning tasks", gin.H{
		"total":       len(filtered),
		"departments": out,
	})
}

func (tc *TaskController) views(tasks []models.CleaningTask) []taskView {
	out := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskView{CleaningTask: t, CleaningTimeDisplay: tc.Formatter.Timestamp(t.CleaningTime)})
	}
	return out
}

// CreateTasks accepts a single task or an array of tasks. Nothing is written
// unless every task is valid.
func (tc *TaskController) CreateTasks(c *gin.Context) {
	inputs, err := decodeBatch[taskInput](c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tasks := make([]models.CleaningTask, 0, len(inputs))
	for _, in := range inputs {
		at, err := parseInstant("cleaning_time", in.CleaningTime, tc.Formatter.Location)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		tasks = append(tasks, models.CleaningTask{
			Department:    in.Department,
			CleaningTime:  at,
			CleanedBy:     in.CleanedBy,
			AreaEquipment: in.AreaEquipment,
			CleaningType:  in.CleaningType,
			Comments:      in.Comments,
		})
	}

	if err := tc.Records.CreateTasks(c.Request.Context(), tasks); err != nil {
		respondWriteError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Cleaning log submitted successfully!", tasks)
}

func respondWriteError(c *gin.Context, err error) {
	if services.IsValidation(err) {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondError(c, http.StatusInternalServerError, err)
}
