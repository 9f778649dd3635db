package blog

// Heading is an entry of the table of contents of a rendered blog.
type Heading struct {
	Level int
	Text  string
	ID    string
}

// Detail is a blog prepared for reading.
type Detail struct {
	Blog     *Blog
	HTML     string
	Headings []Heading
}

// Upload is a cover image submitted with a blog.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}
