package camera

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// devicePath returns the V4L2 node for a device index.
func devicePath(deviceID int) string {
	return fmt.Sprintf("/dev/video%d", deviceID)
}

// ListDevices enumerates the V4L2 capture nodes present on the system,
// sorted by index. Used by the CLI to help the user pick --device.
func ListDevices() []int {
	entries, err := os.ReadDir("/dev")
	if err != nil {
		return nil
	}

	var ids []int
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "video") {
			continue
		}
		id, err := strconv.Atoi(strings.TrimPrefix(name, "video"))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
