package media

// MarkdownContentType is the content type every markdown document is
// stored with.
const MarkdownContentType = "text/markdown"

// MarkdownExtension is appended to generated markdown object names.
const MarkdownExtension = ".md"
