package tree

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FileType classifies an entry by its extension for styling and summary
// breakdowns.
type FileType int

// File type classifications.
const (
	TypeOther FileType = iota
	TypeDirectory
	TypeExecutable
	TypeArchive
	TypeImage
	TypeDocument
	TypeSource
	TypeConfig
	TypeAudio
	TypeVideo
)

// String returns a human-readable description of the file type.
func (t FileType) String() string {
	switch t {
	case TypeDirectory:
		return "Directory"
	case TypeExecutable:
		return "Executable"
	case TypeArchive:
		return "Archive"
	case TypeImage:
		return "Image"
	case TypeDocument:
		return "Document"
	case TypeSource:
		return "Source Code"
	case TypeConfig:
		return "Configuration"
	case TypeAudio:
		return "Audio"
	case TypeVideo:
		return "Video"
	default:
		return "File"
	}
}

// extTypes maps lowercase extensions (without the dot) to classifications.
var extTypes = map[string]FileType{
	"exe": TypeExecutable, "bin": TypeExecutable, "run": TypeExecutable,
	"sh": TypeExecutable, "bat": TypeExecutable, "cmd": TypeExecutable,

	"zip": TypeArchive, "tar": TypeArchive, "gz": TypeArchive,
	"bz2": TypeArchive, "xz": TypeArchive, "7z": TypeArchive, "rar": TypeArchive,

	"jpg": TypeImage, "jpeg": TypeImage, "png": TypeImage, "gif": TypeImage,
	"bmp": TypeImage, "svg": TypeImage, "webp": TypeImage, "ico": TypeImage,

	"txt": TypeDocument, "md": TypeDocument, "pdf": TypeDocument,
	"doc": TypeDocument, "docx": TypeDocument, "rtf": TypeDocument, "odt": TypeDocument,

	"rs": TypeSource, "c": TypeSource, "cpp": TypeSource, "h": TypeSource,
	"hpp": TypeSource, "py": TypeSource, "js": TypeSource, "ts": TypeSource,
	"java": TypeSource, "go": TypeSource, "rb": TypeSource, "php": TypeSource,

	"toml": TypeConfig, "yaml": TypeConfig, "yml": TypeConfig, "json": TypeConfig,
	"xml": TypeConfig, "ini": TypeConfig, "conf": TypeConfig, "cfg": TypeConfig,
	"env": TypeConfig,

	"mp3": TypeAudio, "wav": TypeAudio, "flac": TypeAudio, "ogg": TypeAudio,
	"m4a": TypeAudio, "aac": TypeAudio,

	"mp4": TypeVideo, "avi": TypeVideo, "mkv": TypeVideo, "mov": TypeVideo,
	"wmv": TypeVideo, "flv": TypeVideo, "webm": TypeVideo,
}

// Classify determines the file type of an entry from its name.
func Classify(name string, isDir bool) FileType {
	if isDir {
		return TypeDirectory
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if t, ok := extTypes[ext]; ok {
		return t
	}
	return TypeOther
}

// typeStyles maps each file type to its display style, using the ANSI
// 16-color palette so output degrades cleanly on basic terminals.
var typeStyles = map[FileType]lipgloss.Style{
	TypeDirectory:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
	TypeExecutable: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
	TypeArchive:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	TypeImage:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
	TypeDocument:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	TypeSource:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	TypeConfig:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
	TypeAudio:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	TypeVideo:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	TypeOther:      lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
}

// Style returns the display style for this file type.
func (t FileType) Style() lipgloss.Style {
	if s, ok := typeStyles[t]; ok {
		return s
	}
	return typeStyles[TypeOther]
}
