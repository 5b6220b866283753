package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hardev/prismops/internal/config"
	"github.com/hardev/prismops/internal/prism"
)

func TestRenderImages(t *testing.T) {
	out := RenderImages([]prism.Image{
		{ExtID: "img-1", Name: "win2022-base", Type: "DISK_IMAGE", SizeInBytes: 2 << 30},
	})

	assert.Contains(t, out, "Available Images")
	assert.Contains(t, out, "win2022-base")
	assert.Contains(t, out, "img-1")
	assert.Contains(t, out, "2.00")
}

func TestRenderSubnets_VlanFallback(t *testing.T) {
	vlan := 120
	out := RenderSubnets([]prism.Subnet{
		{ExtID: "net-1", Name: "prod", SubnetType: "VLAN", VlanID: &vlan},
		{ExtID: "net-2", Name: "overlay", SubnetType: "OVERLAY"},
	})

	assert.Contains(t, out, "120")
	assert.Contains(t, out, "N/A")
}

func TestRenderDeploySummary(t *testing.T) {
	out := RenderDeploySummary("test-vm",
		&prism.Image{Name: "win2022-base", SizeInBytes: 80 << 30},
		&prism.Subnet{Name: "prod-vlan120"},
		config.DefaultProfile())

	assert.Contains(t, out, "test-vm")
	assert.Contains(t, out, "win2022-base")
	assert.Contains(t, out, "prod-vlan120")
	assert.Contains(t, out, "4 x 1 cores")
	assert.Contains(t, out, "8192 MiB")
	assert.Contains(t, out, "80 GiB (SCSI)")
}
