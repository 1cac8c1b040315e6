package manifest

// Manifest is the top-level output of a blurimg build.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Entries     map[string]Entry `json:"entries"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers   int    `json:"workers"`
	ThumbSize int    `json:"thumb_size"`
	Encoding  string `json:"encoding,omitempty"` // manifest compression, "" for plain JSON
}

// Entry describes one source image and its placeholder.
type Entry struct {
	Source      SourceInfo `json:"source"`
	BlurHash    string     `json:"blurhash"`
	Components  Components `json:"components"`
	AspectRatio float64    `json:"aspect_ratio"`        // width / height
	AvgColor    *[3]uint8  `json:"avg_color,omitempty"` // [R,G,B] 0-255, from the DC term
}

// SourceInfo holds metadata about the source image.
type SourceInfo struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
	Hash     string `json:"hash"` // xxhash64 of the file, 16 hex chars
	HasAlpha bool   `json:"has_alpha"`
}

// Components records the component grid a hash was encoded with.
type Components struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Stats aggregates build metrics.
type Stats struct {
	TotalEntries    int   `json:"total_entries"`
	TotalInputBytes int64 `json:"total_input_bytes"`
	TotalHashBytes  int   `json:"total_hash_bytes"`
	Reused          int   `json:"reused,omitempty"` // entries carried over by an incremental build
	Failed          int   `json:"failed,omitempty"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the base name of a manifest inside an output directory;
// compressed manifests append the codec extension.
const FileName = "blurimg.manifest.json"
