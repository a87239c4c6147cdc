package documents

var (
	Inspect          = inspect
	RotatePage       = rotatePage
	Reorder          = reorder
	Stamp            = stamp
	StampDescription = stampDescription
	CoreFont         = coreFont
	PageOrder        = pageOrder
	NewIndex         = newIndex
	SanitizeFilename = sanitizeFilename
)
