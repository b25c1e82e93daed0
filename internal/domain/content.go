package domain

type ContentKind string

const (
	ContentImage ContentKind = "image"
	ContentText  ContentKind = "text"
)

// ImageFit controls how an image fills its region.
type ImageFit string

const (
	FitCover   ImageFit = "cover"
	FitContain ImageFit = "contain"
)

// TextAlign is the horizontal alignment of a text region.
type TextAlign string

const (
	AlignLeft    TextAlign = "left"
	AlignCenter  TextAlign = "center"
	AlignRight   TextAlign = "right"
	AlignJustify TextAlign = "justify"
)

type ImageContent struct {
	AssetRef string   `json:"assetRef"`
	Fit      ImageFit `json:"fit,omitempty"`
	Flip     bool     `json:"flip,omitempty"`
}

type TextContent struct {
	Body  string    `json:"body"`
	Align TextAlign `json:"align,omitempty"`
}

// Content is what a leaf shows. Exactly one of Image or Text is set;
// a nil *Content is an empty region.
type Content struct {
	Kind  ContentKind   `json:"kind"`
	Image *ImageContent `json:"image,omitempty"`
	Text  *TextContent  `json:"text,omitempty"`
}

func NewImage(assetRef string, fit ImageFit, flip bool) *Content {
	return &Content{Kind: ContentImage, Image: &ImageContent{AssetRef: assetRef, Fit: fit, Flip: flip}}
}

func NewText(body string, align TextAlign) *Content {
	return &Content{Kind: ContentText, Text: &TextContent{Body: body, Align: align}}
}

// IsEmpty reports whether c carries nothing to show.
func (c *Content) IsEmpty() bool {
	if c == nil {
		return true
	}
	switch c.Kind {
	case ContentImage:
		return c.Image == nil
	case ContentText:
		return c.Text == nil
	}
	return true
}

// Clone returns a deep copy; nil and empty content clone to nil.
func (c *Content) Clone() *Content {
	if c.IsEmpty() {
		return nil
	}
	out := &Content{Kind: c.Kind}
	switch c.Kind {
	case ContentImage:
		img := *c.Image
		out.Image = &img
	case ContentText:
		txt := *c.Text
		out.Text = &txt
	}
	return out
}
