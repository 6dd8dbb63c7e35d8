package domain

// Button is one reply button on an interactive message.
type Button struct {
	ID    string
	Title string
}

// ListRow is one selectable row inside a list message section.
type ListRow struct {
	ID    string
	Title string
}

// ListSection groups rows under a section title in a list message.
type ListSection struct {
	Title string
	Rows  []ListRow
}
