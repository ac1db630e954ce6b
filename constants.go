package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeSearch
	ModeConfirm
	ModeHelp
)

type FileOperation int

const (
	FileOpSavePNG FileOperation = iota
	FileOpSaveSVG
	FileOpSaveVisualTXT
)

type ConfirmAction int

const (
	ConfirmReset ConfirmAction = iota
)

// Geometry of the mind map in layout units.
const (
	defaultHGap       = 240.0
	defaultVGap       = 180.0
	defaultNodeRadius = 55.0
)

// Fit-to-view padding.
const (
	defaultBasePadding  = 180.0
	defaultMaxPadding   = 350.0
	defaultPaddingRatio = 0.15
)

const (
	defaultTitleChars    = 10
	defaultTitleLines    = 2
	defaultPreviewLength = 70
)

const (
	storageKey     = "mindmap-data"
	storageVersion = 1

	sidePanelWidth = 38
	minCanvasWidth = 20
	txtExportCols  = 120
	txtExportRows  = 40
)
