package documents

import "github.com/JaimeStill/pdf-editor/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Upload *openapi.Operation
	Delete *openapi.Operation
	Export *openapi.Operation
	Rotate *openapi.Operation
	Move   *openapi.Operation
}

var docID = openapi.PathParam("id", "uuid", "Document ID")

var pageIndex = openapi.IntPathParam("page", "Zero-based page index")

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List documents",
		Description: "List uploaded documents with pagination",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("search", "string", "Search in filename", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields, prefix - for descending", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Documents list", "DocumentPageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Find document",
		Description: "Find document by ID, including page geometry",
		Parameters:  []*openapi.Parameter{docID},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document details", "Document"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Upload: &openapi.Operation{
		Summary:     "Upload document",
		Description: "Upload a PDF. Its text layer is extracted into editable regions.",
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {
					Schema: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"file": {Type: "string", Format: "binary", Description: "PDF file to upload"},
						},
						Required: []string{"file"},
					},
				},
			},
		},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Document uploaded", "Document"),
			400: openapi.ResponseRef("BadRequest"),
			413: {Description: "File too large"},
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete document",
		Description: "Delete document, its regions and its stored file",
		Parameters:  []*openapi.Parameter{docID},
		Responses: map[int]*openapi.Response{
			204: {Description: "Document deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Export: &openapi.Operation{
		Summary:     "Export document",
		Description: "Download the PDF with every modified region written onto its page",
		Parameters:  []*openapi.Parameter{docID},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "PDF file",
				Content: map[string]*openapi.MediaType{
					"application/pdf": {Schema: &openapi.Schema{Type: "string", Format: "binary"}},
				},
			},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Rotate: &openapi.Operation{
		Summary:     "Rotate page",
		Description: "Rotate one page clockwise. Regions on the page rotate with it.",
		Parameters:  []*openapi.Parameter{docID, pageIndex},
		RequestBody: openapi.RequestBodyJSON("RotateCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document after rotation", "Document"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Move: &openapi.Operation{
		Summary:     "Move page",
		Description: "Move one page to a new index, shifting the pages in between",
		Parameters:  []*openapi.Parameter{docID, pageIndex},
		RequestBody: openapi.RequestBodyJSON("MoveCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document after the move", "Document"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Document": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"filename":   {Type: "string", Description: "Original filename"},
				"size_bytes": {Type: "integer", Format: "int64", Description: "Stored file size in bytes"},
				"page_count": {Type: "integer"},
				"pages":      openapi.ArrayOf("Page"),
				"created_at": {Type: "string", Format: "date-time"},
				"updated_at": {Type: "string", Format: "date-time"},
			},
		},
		"Page": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"width":    {Type: "number", Description: "Displayed width in points"},
				"height":   {Type: "number", Description: "Displayed height in points"},
				"rotation": {Type: "integer", Enum: []any{0, 90, 180, 270}},
			},
		},
		"DocumentPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf("Document"),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"RotateCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"degrees": {Type: "integer", Enum: []any{90, 180, 270}},
			},
			Required: []string{"degrees"},
		},
		"MoveCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"to": {Type: "integer", Description: "Zero-based destination index"},
			},
			Required: []string{"to"},
		},
	}
}
