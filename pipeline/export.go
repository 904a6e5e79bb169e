package pipeline

// Column produces one display value per record. Flat columns only appear in
// flat output, where no section heading carries the grouping key.
type Column[T any] struct {
	Name  string
	Value func(T) string
	Flat  bool
}

type ColumnSpec[T any] struct {
	Columns  []Column[T]
	Critical func(T) bool
}

// Names lists every column, flat ones included, in declaration order.
func (s ColumnSpec[T]) Names() []string {
	names := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		names = append(names, c.Name)
	}
	return names
}

// TableNames lists the columns shown inside a section table.
func (s ColumnSpec[T]) TableNames() []string {
	names := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		if !c.Flat {
			names = append(names, c.Name)
		}
	}
	return names
}

// Row is one display-ready record. Critical asks the sink to highlight it.
type Row struct {
	Values   map[string]string
	Critical bool
}

func (r Row) Cells(columns []string) []string {
	cells := make([]string, len(columns))
	for i, c := range columns {
		cells[i] = r.Values[c]
	}
	return cells
}

// ToRows formats one row per record, preserving order.
func ToRows[T any](records []T, spec ColumnSpec[T]) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		values := make(map[string]string, len(spec.Columns))
		for _, c := range spec.Columns {
			values[c.Name] = c.Value(rec)
		}
		row := Row{Values: values}
		if spec.Critical != nil {
			row.Critical = spec.Critical(rec)
		}
		rows = append(rows, row)
	}
	return rows
}

// Section is a titled block of rows or of nested sections.
type Section struct {
	Title    string
	Rows     []Row
	Sections []Section
}

func (s Section) RowCount() int {
	n := len(s.Rows)
	for _, sub := range s.Sections {
		n += sub.RowCount()
	}
	return n
}

// BuildSections mirrors groups as sections. titles[i] names the sections at
// depth i; the group key is used where no title function is given.
func BuildSections[T any](groups []Group[T], spec ColumnSpec[T], titles ...func(Group[T]) string) []Section {
	sections := make([]Section, 0, len(groups))
	for _, g := range groups {
		s := Section{Title: g.Key}
		if len(titles) > 0 && titles[0] != nil {
			s.Title = titles[0](g)
		}
		if len(g.Children) > 0 {
			var rest []func(Group[T]) string
			if len(titles) > 1 {
				rest = titles[1:]
			}
			s.Sections = BuildSections(g.Children, spec, rest...)
		} else {
			s.Rows = ToRows(g.Records, spec)
		}
		sections = append(sections, s)
	}
	return sections
}

// Document is a format-independent export: the PDF sink draws its sections,
// the spreadsheet sink writes FlatRows.
type Document struct {
	Title        string
	Subtitle     string
	Columns      []string
	TableColumns []string
	Sections     []Section
}

// FlatRows walks the sections depth first.
func (d Document) FlatRows() []Row {
	var rows []Row
	var walk func([]Section)
	walk = func(sections []Section) {
		for _, s := range sections {
			rows = append(rows, s.Rows...)
			walk(s.Sections)
		}
	}
	walk(d.Sections)
	return rows
}

func (d Document) RowCount() int {
	n := 0
	for _, s := range d.Sections {
		n += s.RowCount()
	}
	return n
}
