package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorReset = "\033[0m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

func gray(text string) string {
	if !useColor() {
		return text
	}
	return colorGray + text + colorReset
}

func bold(text string) string {
	if !useColor() {
		return text
	}
	return colorBold + text + colorReset
}

// hyperlink renders an OSC 8 link on terminals and "text: url" otherwise.
func hyperlink(text, url string) string {
	if !useColor() {
		return fmt.Sprintf("%s: %s", text, url)
	}
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, text)
}

func useColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}
