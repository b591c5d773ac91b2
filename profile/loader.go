package profile

// Loader is the spinner state shared by every controller of one view.
// It is not safe for concurrent use.
type Loader struct {
	IsLoader bool
	Title    string
}

func (l *Loader) Start(title string) {
	l.IsLoader = true
	l.Title = title
}

func (l *Loader) Stop() {
	l.IsLoader = false
	l.Title = ""
}
