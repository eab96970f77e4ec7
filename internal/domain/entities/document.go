package entities

// Document is a rendered proposal handed to the artifact sink (download).
type Document struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
	Pages       int    `json:"pages"`
	Signed      bool   `json:"signed"`
}
