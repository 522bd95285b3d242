package utils

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	selfEmail      string
	internalDomain string
	calendarFile   string
	outputDir      string
	keywordsFile   string
	port           string
}

func NewConfig() *Config {
	selfEmail := func() string {
		selfEmail := os.Getenv("SELF_EMAIL")
		if selfEmail == "" {
			slog.Error("SELF_EMAIL is not set")
			os.Exit(1)
		}
		if !strings.Contains(selfEmail, "@") {
			slog.Error("SELF_EMAIL is not an email address", "SELF_EMAIL", selfEmail)
			os.Exit(1)
		}
		slog.Debug("env", "SELF_EMAIL", selfEmail)
		return strings.ToLower(strings.TrimSpace(selfEmail))
	}()

	return &Config{
		selfEmail: selfEmail,

		internalDomain: func() string {
			internalDomain := os.Getenv("INTERNAL_DOMAIN")
			if internalDomain == "" {
				internalDomain = strings.SplitN(selfEmail, "@", 2)[1]
				slog.Warn("INTERNAL_DOMAIN is not set, using the SELF_EMAIL domain", "domain", internalDomain)
			}
			slog.Debug("env", "INTERNAL_DOMAIN", internalDomain)
			return strings.ToLower(internalDomain)
		}(),

		calendarFile: func() string {
			calendarFile := os.Getenv("CALENDAR_FILE")
			if calendarFile == "" {
				calendarFile = "./calendar.ics"
			}
			slog.Debug("env", "CALENDAR_FILE", calendarFile)
			return calendarFile
		}(),

		outputDir: func() string {
			outputDir := os.Getenv("OUTPUT_DIR")
			if outputDir == "" {
				outputDir = "./analysis"
			}
			slog.Debug("env", "OUTPUT_DIR", outputDir)
			return filepath.Clean(outputDir)
		}(),

		keywordsFile: func() string {
			keywordsFile := os.Getenv("KEYWORDS_FILE")
			if keywordsFile != "" {
				if _, err := os.Stat(keywordsFile); err != nil {
					slog.Error("can't get info of KEYWORDS_FILE", "error", err)
					os.Exit(1)
				}
			}
			slog.Debug("env", "KEYWORDS_FILE", keywordsFile)
			return keywordsFile
		}(),

		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),
	}
}

// Get SELF_EMAIL env, the calendar owner's own address
func (c *Config) GetSelfEmail() string {
	return c.selfEmail
}

// Get INTERNAL_DOMAIN env, defaults to the SELF_EMAIL domain
func (c *Config) GetInternalDomain() string {
	return c.internalDomain
}

// Get CALENDAR_FILE env, default to ./calendar.ics
func (c *Config) GetCalendarFile() string {
	return c.calendarFile
}

// Get OUTPUT_DIR env, default to ./analysis
func (c *Config) GetOutputDir() string {
	return c.outputDir
}

// Get KEYWORDS_FILE env, empty when not set
func (c *Config) GetKeywordsFile() string {
	return c.keywordsFile
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}
