package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Valid values for the hardware fields of a Profile.
var (
	validBusTypes     = []string{"SCSI", "IDE", "SATA"}
	validMachineTypes = []string{"PC", "Q35"}
	validBiosTypes    = []string{"UEFI", "LEGACY"}
	validBootDevices  = []string{"DISK", "CDROM", "NETWORK"}
)

// Profile describes the hardware shape of a VM to deploy. A Profile is built
// once at start-up and passed by value; nothing mutates it afterwards.
type Profile struct {
	Description       string   `mapstructure:"description"`
	NumSockets        int      `mapstructure:"num_sockets"`
	NumCoresPerSocket int      `mapstructure:"num_cores_per_socket"`
	MemoryMiB         int64    `mapstructure:"memory_mib"`
	BootDiskGiB       int64    `mapstructure:"boot_disk_gib"`
	BootDiskBus       string   `mapstructure:"boot_disk_bus"`
	MachineType       string   `mapstructure:"machine_type"`
	BiosType          string   `mapstructure:"bios_type"`
	SecureBoot        bool     `mapstructure:"secure_boot"`
	TPMEnabled        bool     `mapstructure:"tpm_enabled"`
	BootOrder         []string `mapstructure:"boot_order"`
	GuestOSType       string   `mapstructure:"guest_os_type"`
}

// DefaultProfile returns the stock Windows deployment profile: 4 vCPUs,
// 8 GiB memory, 80 GiB SCSI boot disk, UEFI with secure boot and TPM.
func DefaultProfile() Profile {
	return Profile{
		Description:       "Windows VM deployed via prismops using the Nutanix v4 API",
		NumSockets:        4,
		NumCoresPerSocket: 1,
		MemoryMiB:         8192,
		BootDiskGiB:       80,
		BootDiskBus:       "SCSI",
		MachineType:       "PC",
		BiosType:          "UEFI",
		SecureBoot:        true,
		TPMEnabled:        true,
		BootOrder:         []string{"DISK", "CDROM", "NETWORK"},
		GuestOSType:       "WINDOWS",
	}
}

// LoadProfile reads a profile YAML file, layering its fields over the
// defaults. Fields absent from the file keep their default values.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()

	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Profile{}, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if err := mapstructure.Decode(raw, &profile); err != nil {
		return Profile{}, fmt.Errorf("failed to decode profile: %w", err)
	}

	if err := profile.Validate(); err != nil {
		return Profile{}, fmt.Errorf("profile validation failed: %w", err)
	}

	return profile, nil
}

// Validate checks the profile against the values the AHV API accepts.
func (p Profile) Validate() error {
	if p.NumSockets < 1 {
		return fmt.Errorf("num_sockets must be at least 1, got %d", p.NumSockets)
	}
	if p.NumCoresPerSocket < 1 {
		return fmt.Errorf("num_cores_per_socket must be at least 1, got %d", p.NumCoresPerSocket)
	}
	if p.MemoryMiB < 1 {
		return fmt.Errorf("memory_mib must be positive, got %d", p.MemoryMiB)
	}
	if p.BootDiskGiB < 1 {
		return fmt.Errorf("boot_disk_gib must be positive, got %d", p.BootDiskGiB)
	}
	if !contains(validBusTypes, p.BootDiskBus) {
		return fmt.Errorf("boot_disk_bus must be one of %v, got %q", validBusTypes, p.BootDiskBus)
	}
	if !contains(validMachineTypes, p.MachineType) {
		return fmt.Errorf("machine_type must be one of %v, got %q", validMachineTypes, p.MachineType)
	}
	if !contains(validBiosTypes, p.BiosType) {
		return fmt.Errorf("bios_type must be one of %v, got %q", validBiosTypes, p.BiosType)
	}
	if len(p.BootOrder) == 0 {
		return fmt.Errorf("boot_order must name at least one boot device")
	}
	for _, dev := range p.BootOrder {
		if !contains(validBootDevices, dev) {
			return fmt.Errorf("boot_order entries must be one of %v, got %q", validBootDevices, dev)
		}
	}
	if p.GuestOSType == "" {
		return fmt.Errorf("guest_os_type must not be empty")
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
