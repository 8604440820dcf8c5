package pagination

// WithDefaults applies the same coercion the codec applies to URL input.
//
// Rules:
//   - If page <= 0, set to config.DefaultPage
//   - If page_size <= 0, set to config.DefaultPageSize
func (p Params) WithDefaults(config Config) Params {
	if p.Page <= 0 {
		p.Page = config.DefaultPage
	}
	if p.PageSize <= 0 {
		p.PageSize = config.DefaultPageSize
	}
	return p
}

// Bounded caps page_size at config.MaxPageSize. The adapter applies it
// before a request leaves for the backend; the URL keeps what the user asked for.
func (p Params) Bounded(config Config) Params {
	p = p.WithDefaults(config)
	if config.MaxPageSize > 0 && p.PageSize > config.MaxPageSize {
		p.PageSize = config.MaxPageSize
	}
	return p
}
