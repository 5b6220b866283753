package deploy

import (
	"time"

	"github.com/hardev/prismops/internal/config"
	"github.com/hardev/prismops/internal/prism"
)

const (
	bytesPerMiB = 1024 * 1024
	bytesPerGiB = 1024 * 1024 * 1024
)

// DefaultVMName returns the timestamped name used when the operator does not
// supply one.
func DefaultVMName(now time.Time) string {
	return "Windows-VM-" + now.Format("20060102-150405")
}

// BuildCreateRequest assembles the v4 VM creation payload from the immutable
// profile and the selected image and subnet. The boot disk is cloned from
// the image, which also serves as its storage container reference.
func BuildCreateRequest(name string, profile config.Profile, image *prism.Image, subnet *prism.Subnet) *prism.CreateVMRequest {
	bootDevices := make([]prism.BootDevice, 0, len(profile.BootOrder))
	for i, dev := range profile.BootOrder {
		bootDevices = append(bootDevices, prism.BootDevice{
			BootDeviceType:  dev,
			BootDeviceOrder: i,
		})
	}

	return &prism.CreateVMRequest{
		Name:                name,
		Description:         profile.Description,
		NumSockets:          profile.NumSockets,
		NumCoresPerSocket:   profile.NumCoresPerSocket,
		MemorySizeBytes:     profile.MemoryMiB * bytesPerMiB,
		MachineType:         profile.MachineType,
		BiosType:            profile.BiosType,
		IsSecureBootEnabled: profile.SecureBoot,
		IsTpmEnabled:        profile.TPMEnabled,
		BootConfig:          prism.BootConfig{BootDevices: bootDevices},
		Disks: []prism.Disk{
			{
				DiskAddress:         prism.DiskAddress{BusType: profile.BootDiskBus, Index: 0},
				DiskSizeBytes:       profile.BootDiskGiB * bytesPerGiB,
				StorageContainer:    prism.Reference{ExtID: image.ExtID},
				DataSourceReference: prism.Reference{ExtID: image.ExtID},
			},
		},
		Nics: []prism.NIC{
			{
				NetworkInfo: prism.NetworkInfo{Subnet: prism.Reference{ExtID: subnet.ExtID}},
				NICType:     "NORMAL_NIC",
			},
		},
		GuestOS:   prism.GuestOS{OSType: profile.GuestOSType},
		APCConfig: prism.APCConfig{IsEnabled: false},
	}
}
