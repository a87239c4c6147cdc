package regions

import "github.com/JaimeStill/pdf-editor/pkg/openapi"

type spec struct {
	List           *openapi.Operation
	Insert         *openapi.Operation
	ReplaceContent *openapi.Operation
	SetProperty    *openapi.Operation
	Delete         *openapi.Operation
	Fonts          *openapi.Operation
}

var (
	docID    = openapi.PathParam("id", "uuid", "Document ID")
	regionID = openapi.PathParam("rid", "", "Region ID")
	pageQ    = openapi.QueryParam("page", "integer", "Zero-based page index", false)
)

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List regions",
		Description: "List the text regions of a document. q searches region text case-insensitively; page restricts the result to one page.",
		Parameters: []*openapi.Parameter{
			docID,
			pageQ,
			openapi.QueryParam("q", "string", "Text to search for", false),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Regions in page and reading order",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: openapi.ArrayOf("Region")},
				},
			},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Insert: &openapi.Operation{
		Summary:     "Insert region",
		Description: "Create a text region with its top-left corner at the given point",
		Parameters:  []*openapi.Parameter{docID},
		RequestBody: openapi.RequestBodyJSON("InsertCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Region created", "Region"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	ReplaceContent: &openapi.Operation{
		Summary:     "Replace region text",
		Description: "Replace the text of a region and mark it modified",
		Parameters:  []*openapi.Parameter{docID, regionID},
		RequestBody: openapi.RequestBodyJSON("ContentCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Region updated", "Region"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	SetProperty: &openapi.Operation{
		Summary:     "Set region property",
		Description: "Change one presentation attribute of a region. font_name is read-only.",
		Parameters:  []*openapi.Parameter{docID, regionID},
		RequestBody: openapi.RequestBodyJSON("PropertyCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Region updated", "Region"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete region",
		Parameters: []*openapi.Parameter{docID, regionID},
		Responses: map[int]*openapi.Response{
			204: {Description: "Region deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Fonts: &openapi.Operation{
		Summary:     "List fonts",
		Description: "List the distinct fonts used by the regions of a document",
		Parameters:  []*openapi.Parameter{docID, pageQ},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Distinct fonts",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: openapi.ArrayOf("Font")},
				},
			},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	alignment := &openapi.Schema{Type: "string", Enum: []any{"start", "center", "end", "justified"}}
	spacing := &openapi.Schema{Type: "number", Enum: []any{1.0, 1.15, 1.5, 2.0}}

	return map[string]*openapi.Schema{
		"Region": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string"},
				"page":         {Type: "integer", Description: "Zero-based page index"},
				"text":         {Type: "string"},
				"left":         {Type: "number"},
				"top":          {Type: "number"},
				"right":        {Type: "number"},
				"bottom":       {Type: "number"},
				"modified":     {Type: "boolean"},
				"font_name":    {Type: "string"},
				"font_size":    {Type: "number"},
				"line_spacing": spacing,
				"alignment":    alignment,
				"is_bold":      {Type: "boolean"},
				"is_italic":    {Type: "boolean"},
			},
		},
		"InsertCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":         {Type: "integer"},
				"text":         {Type: "string"},
				"x":            {Type: "number"},
				"y":            {Type: "number"},
				"font_size":    {Type: "number"},
				"line_spacing": spacing,
				"alignment":    alignment,
			},
			Required: []string{"page", "text", "x", "y"},
		},
		"ContentCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"text": {Type: "string"},
			},
			Required: []string{"text"},
		},
		"PropertyCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"property": {Type: "string", Enum: []any{"font_size", "line_spacing", "alignment"}},
				"value":    {Type: "string"},
			},
			Required: []string{"property", "value"},
		},
		"Font": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":      {Type: "string"},
				"size":      {Type: "number"},
				"is_bold":   {Type: "boolean"},
				"is_italic": {Type: "boolean"},
			},
		},
	}
}
