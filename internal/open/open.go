package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/index"
)

// OpenTranscript opens the transcript stored under key in $EDITOR, positioned
// at the header line of message hitIdx.
func OpenTranscript(db *index.DB, key string, hitIdx int) error {
	t, err := db.GetTranscript(key)
	if err != nil {
		return fmt.Errorf("get transcript: %w", err)
	}
	if t == nil {
		return fmt.Errorf("transcript not found: %s", key)
	}

	filePath := t.FilePath
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file not found: %s", filePath)
	}

	lineNum := 1
	if hitIdx >= 0 {
		msgs, local, _, _, err := db.GetMessagesWindow(key, hitIdx, 0)
		if err == nil && local >= 0 {
			lineNum = msgs[local].LineNumber
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	cmd := editorCommand(editor, filePath, lineNum)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func editorCommand(editor, filePath string, lineNum int) *exec.Cmd {
	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		return exec.Command(editor, fmt.Sprintf("+%d", lineNum), filePath)
	case strings.Contains(editor, "code"):
		return exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less") || strings.Contains(editor, "nano") || strings.Contains(editor, "emacs"):
		return exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		return exec.Command(editor, filePath)
	}
}
