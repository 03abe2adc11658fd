package ports

// LinkOpener opens a link URL with the desktop's default handler
type LinkOpener interface {
	// Open launches the handler for rawURL. Only absolute http, https and
	// file URLs are accepted.
	Open(rawURL string) error
}
