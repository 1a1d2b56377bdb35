package modehandler

import (
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/inkwell/internal/input"
	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// handleActionCommand handles actions in ModeCommand.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent, ev *tcell.EventKey) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.cmdBuffer += string(actionEvent.Rune)

	case input.ActionDeleteCharBackward:
		if mh.cmdBuffer == "" {
			mh.leaveCommandMode()
			logger.Debugf("ModeHandler: Exiting Command Mode via Backspace")
			return true
		}
		_, size := utf8.DecodeLastRuneInString(mh.cmdBuffer)
		mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-size]

	case input.ActionInsertNewLine:
		cmd := mh.cmdBuffer
		mh.leaveCommandMode()
		mh.executeCommand(cmd)
		return true

	case input.ActionQuit:
		mh.leaveCommandMode()
		logger.Debugf("ModeHandler: Canceled Command Mode via Escape")
		return true

	case input.ActionForceQuit:
		mh.Quit()
		return false

	default:
		return false
	}

	mh.statusBar.SetCommandLine(mh.cmdBuffer, true)
	return true
}

func (mh *ModeHandler) leaveCommandMode() {
	mh.currentMode = ModeNormal
	mh.cmdBuffer = ""
	mh.statusBar.SetCommandLine("", false)
}

// executeCommand parses and runs a command line such as "bold on" or "wc".
func (mh *ModeHandler) executeCommand(cmdStr string) {
	parts := strings.Fields(cmdStr)
	if len(parts) == 0 {
		return
	}
	cmdName, args := parts[0], parts[1:]

	cmdFunc, exists := mh.commands[cmdName]
	if !exists {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", cmdName)
		return
	}
	logger.Debugf("ModeHandler: Executing command ':%s' with args %v", cmdName, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", cmdName, err)
	}
}
