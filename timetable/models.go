package timetable

// Substitution — разовая замена занятия на конкретную дату.
type Substitution struct {
	Date    string `json:"date"`
	Teacher string `json:"teacher,omitempty"`
	Room    string `json:"room,omitempty"`
	Note    string `json:"note,omitempty"`
}

// Lesson — одно занятие в фиксированной ячейке недельной сетки.
type Lesson struct {
	Time          string         `json:"time"`
	Subject       string         `json:"subject"`
	Room          string         `json:"room,omitempty"`
	Teacher       string         `json:"teacher,omitempty"`
	Subgroup      *int           `json:"subgroup,omitempty"`
	Type          string         `json:"type,omitempty"`
	Parity        string         `json:"parity,omitempty"`
	Weeks         []int          `json:"weeks,omitempty"`
	Substitutions []Substitution `json:"substitutions,omitempty"`
}

// Week — занятия одной чётности, по дням недели.
type Week map[string][]Lesson

// WeekTable — полный двухнедельный цикл группы.
type WeekTable struct {
	Odd  Week `json:"odd"`
	Even Week `json:"even"`
}

// Document — корень датасета расписаний. В датасете встречаются три
// исторических формы: полное дерево с институтами, дерево от факультетов
// и плоская карта групп. Неизвестные корни при разборе просто остаются пустыми,
// поэтому один тип покрывает все три формы.
type Document struct {
	Institutions map[string]Institution `json:"institutions"`
	Faculties    map[string]Faculty     `json:"faculties"`
	Groups       map[string]WeekTable   `json:"groups"`
}

type Institution struct {
	Faculties map[string]Faculty `json:"faculties"`
}

type Faculty struct {
	Formats map[string]StudyFormat `json:"formats"`
}

type StudyFormat struct {
	Degrees map[string]Degree `json:"degrees"`
}

type Degree struct {
	Courses map[string]Course `json:"courses"`
}

type Course struct {
	Groups map[string]WeekTable `json:"groups"`
}
