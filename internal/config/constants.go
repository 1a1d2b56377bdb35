package config

import "time"

// Base application details
const AppName = "inkwell"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "inkwell.log"
const ThemesDirName = "themes"

// History
const DefaultHistorySize = 50

// Editing surface
const DefaultDebounce = 800 * time.Millisecond
const DefaultTaskClass = "task"
const SystemClipboard = true
const HighlightCode = true

// Plugins
const DefaultAutosaveInterval = 1 * time.Minute

// Appearance
const DefaultTheme = "Inkwell Dark"

// UI Layout
const StatusBarHeight = 2

// Status Bar
const MessageTimeout = 4 * time.Second
