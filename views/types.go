package views

// Site carries what templates need to build absolute and CDN URLs. The
// App fills it from its config.
type Site struct {
	Name      string
	URL       string
	ProjectID string
	Dataset   string
}
