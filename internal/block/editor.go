package block

// FieldKind selects the input widget for a field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindURL      FieldKind = "url"
	KindImage    FieldKind = "image"
	KindBool     FieldKind = "bool"
	KindList     FieldKind = "list"
)

// Field describes one editable key of a block's content.
type Field struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Placeholder string    `json:"placeholder,omitempty"`
	// ItemFields and ItemDefaults apply to KindList only.
	ItemFields   []Field        `json:"item_fields,omitempty"`
	ItemDefaults map[string]any `json:"item_defaults,omitempty"`
	ItemLabel    string         `json:"item_label,omitempty"`
}

// Editor exposes the form schema for one block type.
type Editor interface {
	Type() Type
	Fields() []Field
	// Normalize fills absent fields with empty defaults and returns a copy.
	Normalize(Content) Content
}

type schemaEditor struct {
	blockType Type
	fields    []Field
}

func (e schemaEditor) Type() Type { return e.blockType }

func (e schemaEditor) Fields() []Field {
	out := make([]Field, len(e.fields))
	copy(out, e.fields)
	return out
}

func (e schemaEditor) Normalize(content Content) Content {
	return normalizeFields(content, e.fields)
}

func normalizeFields(content Content, fields []Field) Content {
	out := content.Clone()
	for _, field := range fields {
		switch field.Kind {
		case KindBool:
			out[field.Key] = content.Bool(field.Key)
		case KindList:
			items := content.Items(field.Key)
			normalized := make([]Content, 0, len(items))
			for _, item := range items {
				normalized = append(normalized, normalizeItem(item, field))
			}
			out[field.Key] = itemsToAny(normalized)
		default:
			out[field.Key] = content.String(field.Key)
		}
	}
	return out
}

func normalizeItem(item Content, field Field) Content {
	out := normalizeFields(item, field.ItemFields)
	for key, value := range field.ItemDefaults {
		if s, ok := out[key].(string); !ok || s == "" {
			out[key] = value
		}
	}
	return out
}

func newItem(field Field) Content {
	item := Content{}
	for _, sub := range field.ItemFields {
		if sub.Kind == KindBool {
			item[sub.Key] = false
			continue
		}
		item[sub.Key] = ""
	}
	for key, value := range field.ItemDefaults {
		item[key] = value
	}
	return item
}

func textField(key, label, placeholder string) Field {
	return Field{Key: key, Label: label, Kind: KindText, Placeholder: placeholder}
}

func textareaField(key, label, placeholder string) Field {
	return Field{Key: key, Label: label, Kind: KindTextarea, Placeholder: placeholder}
}

func linkField(key, label, placeholder string) Field {
	return Field{Key: key, Label: label, Kind: KindURL, Placeholder: placeholder}
}

func imageField(key, label string) Field {
	return Field{Key: key, Label: label, Kind: KindImage}
}

func listField(key, label, itemLabel string, defaults map[string]any, fields ...Field) Field {
	return Field{Key: key, Label: label, Kind: KindList, ItemLabel: itemLabel, ItemFields: fields, ItemDefaults: defaults}
}

var editors = map[Type]Editor{
	TypeHeroSimple: schemaEditor{TypeHeroSimple, []Field{
		textField("title", "Title", "Page Title"),
		textareaField("subtitle", "Subtitle", "Page description..."),
	}},
	TypeHeroBanner: schemaEditor{TypeHeroBanner, []Field{
		textField("title", "Title", "Headline"),
		textareaField("subtitle", "Subtitle", "Supporting text..."),
		imageField("image_url", "Background Image"),
		textField("button_text", "Button Text", "Get Started"),
		linkField("button_link", "Button Link", "/contact"),
		{Key: "overlay", Label: "Dark Overlay", Kind: KindBool},
	}},
	TypeText: schemaEditor{TypeText, []Field{
		textField("heading", "Heading", "Section Heading"),
		textareaField("body", "Body Text", "Write your content here..."),
	}},
	TypeImage: schemaEditor{TypeImage, []Field{
		imageField("url", "Image"),
		textField("caption", "Caption", "Image caption (optional)"),
	}},
	TypeImageGallery: schemaEditor{TypeImageGallery, []Field{
		textField("title", "Section Title", "Gallery Title"),
		listField("items", "Images", "Image", nil,
			imageField("url", "Image"),
			textField("caption", "Caption", "Caption"),
		),
	}},
	TypeVideo: schemaEditor{TypeVideo, []Field{
		textField("title", "Title", "Video title"),
		linkField("url", "Video URL", "https://www.youtube.com/watch?v=..."),
		textField("caption", "Caption", "Caption (optional)"),
	}},
	TypeTwoColumn: schemaEditor{TypeTwoColumn, []Field{
		textareaField("left_content", "Left Column", "Left column content..."),
		textareaField("right_content", "Right Column", "Right column content..."),
	}},
	TypeCards: schemaEditor{TypeCards, []Field{
		textField("title", "Section Title", "Cards Section Title"),
		listField("items", "Cards", "Card", nil,
			textField("title", "Title", "Card title"),
			textareaField("description", "Description", "Card description"),
		),
	}},
	TypeFeatures: schemaEditor{TypeFeatures, []Field{
		textField("title", "Section Title", "Features Section Title"),
		listField("items", "Features", "Feature", map[string]any{"icon": "star"},
			textField("title", "Title", "Feature title"),
			textareaField("description", "Description", "Feature description"),
			textField("icon", "Icon", "star"),
		),
	}},
	TypeStats: schemaEditor{TypeStats, []Field{
		textField("title", "Section Title", "Stats Section Title"),
		listField("items", "Counters", "Counter", nil,
			textField("value", "Value", "100+"),
			textField("label", "Label", "Projects"),
		),
	}},
	TypeTeamGrid: schemaEditor{TypeTeamGrid, []Field{
		textField("title", "Section Title", "Our Team"),
		listField("items", "Members", "Member", nil,
			textField("name", "Name", "Full name"),
			textField("role", "Role", "Position"),
			imageField("image_url", "Photo"),
			textareaField("bio", "Bio", "Short bio..."),
		),
	}},
	TypeQuote: schemaEditor{TypeQuote, []Field{
		textareaField("text", "Quote", "Quote text..."),
		textField("author", "Author", "Source"),
	}},
	TypeTestimonial: schemaEditor{TypeTestimonial, []Field{
		textareaField("quote", "Quote", "What they said..."),
		textField("author", "Author", "Name"),
		textField("role", "Role", "CEO, Company Name"),
	}},
	TypeTimeline: schemaEditor{TypeTimeline, []Field{
		textField("title", "Section Title", "Our History"),
		listField("items", "Events", "Event", nil,
			textField("date", "Date", "1995"),
			textField("title", "Title", "Milestone"),
			textareaField("description", "Description", "What happened..."),
		),
	}},
	TypeCTA: schemaEditor{TypeCTA, []Field{
		textField("title", "Title", "CTA Title"),
		textareaField("description", "Description", "CTA description..."),
		textField("button_text", "Button Text", "Get Started"),
		linkField("button_link", "Button Link", "/contact"),
	}},
	TypeAccordion: schemaEditor{TypeAccordion, []Field{
		textField("title", "Section Title", "FAQ Section Title"),
		listField("items", "Items", "Item", nil,
			textField("title", "Question / Title", "Question / Title"),
			textareaField("body", "Answer / Content", "Answer / Content"),
		),
	}},
	TypeDivider: schemaEditor{TypeDivider, nil},
}

// EditorFor returns the editor for t. Unknown types get the text editor.
func EditorFor(t Type) Editor {
	if editor, ok := editors[t]; ok {
		return editor
	}
	return editors[TypeText]
}

// Form is a controlled view over one block's content. Every edit builds a
// fresh Content and passes it to OnChange before returning.
type Form struct {
	editor   Editor
	content  Content
	OnChange func(Content)
}

// NewForm binds an editor for t to content.
func NewForm(t Type, content Content, onChange func(Content)) *Form {
	return &Form{
		editor:   EditorFor(t),
		content:  content.Clone(),
		OnChange: onChange,
	}
}

// Fields returns the editor schema.
func (f *Form) Fields() []Field {
	return f.editor.Fields()
}

// Content returns a copy of the current content with defaults applied.
func (f *Form) Content() Content {
	return f.editor.Normalize(f.content)
}

// Set assigns a top-level field.
func (f *Form) Set(key string, value any) Content {
	next := f.content.Clone()
	next[key] = cloneValue(value)
	return f.emit(next)
}

// AddItem appends an empty item to the list at listKey.
func (f *Form) AddItem(listKey string) Content {
	field, _ := f.listField(listKey)
	items := f.content.Items(listKey)
	items = append(items, newItem(field))
	next := f.content.Clone()
	next[listKey] = itemsToAny(items)
	return f.emit(next)
}

// UpdateItem sets one field of item i. Out of range indexes change nothing.
func (f *Form) UpdateItem(listKey string, i int, key string, value any) Content {
	items := f.content.Items(listKey)
	if i < 0 || i >= len(items) {
		return f.content.Clone()
	}
	items[i][key] = cloneValue(value)
	next := f.content.Clone()
	next[listKey] = itemsToAny(items)
	return f.emit(next)
}

// RemoveItem deletes item i from the list at listKey.
func (f *Form) RemoveItem(listKey string, i int) Content {
	items := f.content.Items(listKey)
	if i < 0 || i >= len(items) {
		return f.content.Clone()
	}
	items = append(items[:i], items[i+1:]...)
	next := f.content.Clone()
	next[listKey] = itemsToAny(items)
	return f.emit(next)
}

func (f *Form) emit(next Content) Content {
	f.content = next
	if f.OnChange != nil {
		f.OnChange(next.Clone())
	}
	return next.Clone()
}

func (f *Form) listField(key string) (Field, bool) {
	for _, field := range f.editor.Fields() {
		if field.Key == key && field.Kind == KindList {
			return field, true
		}
	}
	return Field{Key: key, Kind: KindList}, false
}
