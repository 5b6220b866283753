package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hardev/prismops/internal/config"
	"github.com/hardev/prismops/internal/prism"
)

var (
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// RenderImages produces the image inventory table shown before selection.
func RenderImages(images []prism.Image) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  Available Images"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 80)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-6s %-30s %-12s %-10s %s", "Index", "Name", "Type", "Size (GB)", "ExtID")))
	b.WriteString("\n")

	for i, img := range images {
		sizeGB := float64(img.SizeInBytes) / (1 << 30)
		fmt.Fprintf(&b, "  %-6d %-30s %-12s %-10.2f %s\n", i, img.Name, img.Type, sizeGB, img.ExtID)
	}

	return b.String()
}

// RenderSubnets produces the subnet inventory table shown before selection.
func RenderSubnets(subnets []prism.Subnet) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  Available Networks"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 80)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-6s %-30s %-12s %-8s %s", "Index", "Name", "Type", "VLAN", "ExtID")))
	b.WriteString("\n")

	for i, subnet := range subnets {
		vlan := "N/A"
		if subnet.VlanID != nil {
			vlan = fmt.Sprintf("%d", *subnet.VlanID)
		}
		fmt.Fprintf(&b, "  %-6d %-30s %-12s %-8s %s\n", i, subnet.Name, subnet.SubnetType, vlan, subnet.ExtID)
	}

	return b.String()
}

// RenderDeploySummary produces the pre-flight summary shown before the
// confirmation gate.
func RenderDeploySummary(name string, image *prism.Image, subnet *prism.Subnet, profile config.Profile) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Deployment Summary"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 50)))
	b.WriteString("\n")

	fmt.Fprintf(&b, "    VM Name:     %s\n", name)
	fmt.Fprintf(&b, "    Image:       %s (%.2f GB)\n", image.Name, float64(image.SizeInBytes)/(1<<30))
	fmt.Fprintf(&b, "    Network:     %s\n", subnet.Name)
	fmt.Fprintf(&b, "    CPUs:        %d x %d cores\n", profile.NumSockets, profile.NumCoresPerSocket)
	fmt.Fprintf(&b, "    Memory:      %d MiB\n", profile.MemoryMiB)
	fmt.Fprintf(&b, "    Boot Disk:   %d GiB (%s)\n", profile.BootDiskGiB, profile.BootDiskBus)
	fmt.Fprintf(&b, "    Machine:     %s / %s\n", profile.MachineType, profile.BiosType)
	fmt.Fprintf(&b, "    Secure Boot: %t, TPM: %t\n", profile.SecureBoot, profile.TPMEnabled)

	return b.String()
}
