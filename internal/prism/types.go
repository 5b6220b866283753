package prism

// Reference points at another v4 resource by its external identifier.
type Reference struct {
	ExtID string `json:"extId"`
}

// Image is a disk image from the vmm content inventory.
type Image struct {
	ExtID       string `json:"extId"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	SizeInBytes int64  `json:"sizeInBytes"`
}

// Subnet is a network from the networking config inventory.
type Subnet struct {
	ExtID      string `json:"extId"`
	Name       string `json:"name"`
	SubnetType string `json:"subnetType"`
	VlanID     *int   `json:"vlanId"`
}

// VM is the subset of the v4 VM resource this tool reads.
type VM struct {
	ExtID string `json:"extId"`
	Name  string `json:"name"`
}

type imageListResponse struct {
	Data []Image `json:"data"`
}

type subnetListResponse struct {
	Data []Subnet `json:"data"`
}

type vmGetResponse struct {
	Data VM `json:"data"`
}

type associateCategoriesRequest struct {
	Categories []Reference `json:"categories"`
}

// BootDevice is one entry of the ordered boot device list.
type BootDevice struct {
	BootDeviceType  string `json:"bootDeviceType"`
	BootDeviceOrder int    `json:"bootDeviceOrder"`
}

// BootConfig carries the ordered boot devices for a VM.
type BootConfig struct {
	BootDevices []BootDevice `json:"bootDevices"`
}

// DiskAddress places a disk on a bus.
type DiskAddress struct {
	BusType string `json:"busType"`
	Index   int    `json:"index"`
}

// Disk describes one VM disk cloned from an image.
type Disk struct {
	DiskAddress         DiskAddress `json:"diskAddress"`
	DiskSizeBytes       int64       `json:"diskSizeBytes"`
	StorageContainer    Reference   `json:"storageContainer"`
	DataSourceReference Reference   `json:"dataSourceReference"`
}

// NetworkInfo attaches a NIC to a subnet.
type NetworkInfo struct {
	Subnet Reference `json:"subnet"`
}

// NIC is one network interface of a VM.
type NIC struct {
	NetworkInfo NetworkInfo `json:"networkInfo"`
	NICType     string      `json:"nicType"`
}

// GuestOS declares the guest operating system family.
type GuestOS struct {
	OSType string `json:"osType"`
}

// APCConfig toggles automatic power-state control.
type APCConfig struct {
	IsEnabled bool `json:"isEnabled"`
}

// CreateVMRequest mirrors the vmm/v4 AHV VM creation payload.
type CreateVMRequest struct {
	Name                string     `json:"name"`
	Description         string     `json:"description,omitempty"`
	NumSockets          int        `json:"numSockets"`
	NumCoresPerSocket   int        `json:"numCoresPerSocket"`
	MemorySizeBytes     int64      `json:"memorySizeBytes"`
	MachineType         string     `json:"machineType"`
	BiosType            string     `json:"biosType"`
	IsSecureBootEnabled bool       `json:"isSecureBootEnabled"`
	IsTpmEnabled        bool       `json:"isTpmEnabled"`
	BootConfig          BootConfig `json:"bootConfig"`
	Disks               []Disk     `json:"disks"`
	Nics                []NIC      `json:"nics"`
	GuestOS             GuestOS    `json:"guestOs"`
	APCConfig           APCConfig  `json:"apcConfig"`
}
