// Package assets provides book theme presets.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	ThemeLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads presets compiled into the binary
//	    ├── FilesystemLoader  - loads themes from a directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// A theme file is YAML. Every field is optional and overrides the matching
// field of layout.DefaultTheme; the extra "trim" key selects a trim preset
// before page fields are applied.
//
// # Directory Structure
//
//	{basePath}/
//	└── themes/
//	    └── {name}.yaml
//
// # Security
//
// Theme names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
