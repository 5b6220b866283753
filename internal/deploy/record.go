package deploy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hardev/prismops/internal/prism"
)

// Record captures everything needed to audit a deployment after the fact:
// the request that was sent and the raw response the API returned.
type Record struct {
	Timestamp   string                 `json:"timestamp"`
	VMName      string                 `json:"vm_name"`
	ImageUsed   string                 `json:"image_used"`
	NetworkUsed string                 `json:"network_used"`
	Request     *prism.CreateVMRequest `json:"request"`
	APIResponse json.RawMessage        `json:"api_response"`
}

// WriteRecord persists the deployment record as indented JSON under dir,
// named deployment_<vm>_<timestamp>.json. Returns the file path.
func WriteRecord(dir string, rec *Record, now time.Time) (string, error) {
	name := fmt.Sprintf("deployment_%s_%s.json", rec.VMName, now.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode deployment record: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write deployment record: %w", err)
	}
	return path, nil
}
