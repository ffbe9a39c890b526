package validator

import (
	"fmt"
	"strings"

	"rangeapi/internal/model"
)

// ValidateHostTemplate checks a single host definition.
func ValidateHostTemplate(h *model.HostTemplate) error {
	if !IsValidHostname(h.Hostname) {
		return fmt.Errorf("invalid hostname: %s", h.Hostname)
	}
	if !h.OS.Valid() {
		return fmt.Errorf("unsupported os: %s", h.OS)
	}
	if !h.Spec.Valid() {
		return fmt.Errorf("unsupported spec: %s", h.Spec)
	}
	if h.SizeGB <= 0 {
		return fmt.Errorf("disk size must be positive, got %d", h.SizeGB)
	}
	for _, tag := range h.Tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("tags must not be empty")
		}
	}
	return nil
}

// ValidateSubnetTemplate checks a subnet and all contained hosts.
func ValidateSubnetTemplate(s *model.SubnetTemplate) error {
	if s.Name == "" {
		return fmt.Errorf("subnet name is required")
	}
	if !IsValidCIDR(s.CIDR) {
		return fmt.Errorf("invalid subnet cidr: %s", s.CIDR)
	}
	for i := range s.Hosts {
		if err := ValidateHostTemplate(&s.Hosts[i]); err != nil {
			return fmt.Errorf("subnet %s: %w", s.Name, err)
		}
	}
	return nil
}

// ValidateVPCTemplate checks a VPC, its subnets, and that every subnet CIDR
// fits inside the VPC CIDR.
func ValidateVPCTemplate(v *model.VPCTemplate) error {
	if v.Name == "" {
		return fmt.Errorf("vpc name is required")
	}
	if !IsValidCIDR(v.CIDR) {
		return fmt.Errorf("invalid vpc cidr: %s", v.CIDR)
	}
	for i := range v.Subnets {
		if err := ValidateSubnetTemplate(&v.Subnets[i]); err != nil {
			return fmt.Errorf("vpc %s: %w", v.Name, err)
		}
		if !CIDRContains(v.CIDR, v.Subnets[i].CIDR) {
			return fmt.Errorf("vpc %s: subnet cidr %s not contained in vpc cidr %s",
				v.Name, v.Subnets[i].CIDR, v.CIDR)
		}
	}
	return nil
}

// ValidateRangeTemplate checks the full template tree.
func ValidateRangeTemplate(r *model.RangeTemplate) error {
	if r.Name == "" {
		return fmt.Errorf("range name is required")
	}
	if !r.Provider.Valid() {
		return fmt.Errorf("unsupported provider: %s", r.Provider)
	}
	return ValidateVPCTemplate(&r.VPC)
}
