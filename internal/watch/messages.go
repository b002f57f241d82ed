package watch

import (
	"fmt"
	"time"

	"github.com/tellydone/tellydone/internal/notify"
	"github.com/tellydone/tellydone/internal/proc"
)

const interruptedNote = "Watch interrupted before the process exited."

// seconds renders d the way every notification body does: two decimals with
// a leading sign column.
func seconds(d time.Duration) string {
	return fmt.Sprintf("% .2f", d.Seconds())
}

func progressNotification(h proc.Handle, withLabel bool, elapsed time.Duration) notify.Notification {
	title := fmt.Sprintf("Process %d is still alive", h.PID)
	if withLabel {
		title = "Process still alive: " + h.Display()
	}
	body := fmt.Sprintf("Runned for %s seconds.", seconds(elapsed))
	return notify.NewNotification(title, body, notify.TypeInfo)
}

func completionNotification(h proc.Handle, withLabel bool, elapsed time.Duration, interrupted bool) notify.Notification {
	title := fmt.Sprintf("Process %d finished", h.PID)
	body := fmt.Sprintf("Runned for %s seconds.", seconds(elapsed))
	if withLabel {
		title = "Process finished: " + h.Display()
		body = "Command: " + h.Display() + "\n" + body
	}
	kind := notify.TypeSuccess
	if interrupted {
		body += "\n" + interruptedNote
		kind = notify.TypeInfo
	}
	return notify.NewNotification(title, body, kind)
}
