package config

import "time"

// UI and Display Constants
const (
	// Pagination
	ContributionsPerPage = 10
	DefaultPageSize      = 10
	MaxPageSize          = 25

	// Colors
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	EmbedDefaultColor = 0x2B2D31
	LeaderboardColor  = 0xFFD700
	AssistantColor    = 0x10A37F
)

// Leaderboard Constants
const (
	DefaultLeaderboardSize  = 10
	MaxLeaderboardSize      = 25
	LeaderboardTopMaterials = 5
	MaxAutocompleteChoices  = 25
)

// Database and Performance Constants
const (
	DefaultQueryTimeout     = 30 * time.Second
	LeaderboardQueryTimeout = 10 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	SlowCommandThreshold    = 2 * time.Second
	ImageRenderTimeout      = 30 * time.Second
	UploadTimeout           = 20 * time.Second
)

// AI Constants
const (
	DefaultAIModel          = "gpt-4o-mini"
	DefaultUserDailyLimit   = 25
	DefaultGuildDailyLimit  = 500
	DefaultMaxInputChars    = 4000
	DefaultMaxOutputTokens  = 600
	DefaultAITemperature    = 0.7
	DefaultAIRequestTimeout = 60 * time.Second
	MaxDiscordMessageLength = 2000
)

// Prefix Command Constants
const (
	DefaultPrefix     = "!"
	DefaultDiceSides  = 6
	MaxDiceSides      = 1000
	NoticeDeleteDelay = 10 * time.Second
	UsageDeleteDelay  = 15 * time.Second
)

// Logging Constants
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)
