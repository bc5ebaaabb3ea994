package logger

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/secrets"

	"github.com/lmittmann/tint"
)

// Initialize sets up the global slog logger based on the environment.
// Production (Lambda) logs are JSON so CloudWatch can index them; everything else
// goes through tint for readable, coloured output.
func Initialize(env constants.Environment, level slog.Level) *slog.Logger {
	var handler slog.Handler

	if env == constants.Production {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: replaceAttrForProduction,
		})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:       level,
			TimeFormat:  time.TimeOnly,
			ReplaceAttr: replaceAttrForDev,
		})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("logger initialized", "env", env, "level", level)

	return logger
}

// replaceAttrForProduction masks credentials before they are written.
func replaceAttrForProduction(_ []string, a slog.Attr) slog.Attr {
	return secrets.RedactAttr(a)
}

// replaceAttrForDev masks credentials, then flattens map attributes into key=value pairs
// so nested "context" maps stay on one line in the terminal.
func replaceAttrForDev(_ []string, a slog.Attr) slog.Attr {
	a = secrets.RedactAttr(a)
	if a.Value.Kind() != slog.KindAny {
		return a
	}

	switch a.Value.Any().(type) {
	case map[string]string, map[string]any:
		return slog.String(a.Key, flattenMapAttr(a.Key, a.Value.Any()))
	default:
		return a
	}
}

func flattenMapAttr(prefix string, value any) string {
	pairs := make([]string, 0)

	join := func(key string) string {
		if prefix == "" {
			return key
		}
		return prefix + "." + key
	}

	switch m := value.(type) {
	case map[string]string:
		for k, v := range m {
			pairs = append(pairs, join(k)+"="+v)
		}
	case map[string]any:
		for k, v := range m {
			switch v.(type) {
			case map[string]string, map[string]any:
				pairs = append(pairs, flattenMapAttr(join(k), v))
			default:
				pairs = append(pairs, fmt.Sprintf("%s=%v", join(k), v))
			}
		}
	default:
		return fmt.Sprintf("%v", value)
	}

	sort.Strings(pairs)
	return strings.Join(pairs, " ")
}
