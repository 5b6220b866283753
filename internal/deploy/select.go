// Package deploy builds, audits and records AHV VM deployments.
package deploy

import (
	"fmt"
	"strings"

	"github.com/hardev/prismops/internal/prism"
)

// FindImage locates an image by name for non-interactive selection. An exact
// match always wins; failing that, a single case-insensitive match is
// accepted. Several case-insensitive candidates with no exact match is an
// error, as is an unknown name.
func FindImage(images []prism.Image, name string) (*prism.Image, error) {
	var folded []*prism.Image
	for i := range images {
		if images[i].Name == name {
			return &images[i], nil
		}
		if strings.EqualFold(images[i].Name, name) {
			folded = append(folded, &images[i])
		}
	}

	switch len(folded) {
	case 0:
		return nil, fmt.Errorf("image %q not found in inventory", name)
	case 1:
		return folded[0], nil
	default:
		return nil, fmt.Errorf("image name %q is ambiguous: %d case-insensitive matches and no exact match", name, len(folded))
	}
}

// FindSubnet locates a subnet by name with the same precedence as FindImage.
func FindSubnet(subnets []prism.Subnet, name string) (*prism.Subnet, error) {
	var folded []*prism.Subnet
	for i := range subnets {
		if subnets[i].Name == name {
			return &subnets[i], nil
		}
		if strings.EqualFold(subnets[i].Name, name) {
			folded = append(folded, &subnets[i])
		}
	}

	switch len(folded) {
	case 0:
		return nil, fmt.Errorf("subnet %q not found in inventory", name)
	case 1:
		return folded[0], nil
	default:
		return nil, fmt.Errorf("subnet name %q is ambiguous: %d case-insensitive matches and no exact match", name, len(folded))
	}
}
