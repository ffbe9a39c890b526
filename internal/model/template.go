package model

import "time"

// HostTemplate describes one machine inside a subnet.
type HostTemplate struct {
	ID       string       `json:"id,omitempty"`
	OwnerID  string       `json:"-"`
	SubnetID string       `json:"-"` // empty for standalone templates
	Hostname string       `json:"hostname"`
	OS       OSImage      `json:"os"`
	Spec     InstanceSpec `json:"spec"`
	SizeGB   int          `json:"size"`
	Tags     []string     `json:"tags"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// SubnetTemplate describes a subnet and its hosts.
type SubnetTemplate struct {
	ID      string         `json:"id,omitempty"`
	OwnerID string         `json:"-"`
	VPCID   string         `json:"-"` // empty for standalone templates
	Name    string         `json:"name"`
	CIDR    string         `json:"cidr"`
	Hosts   []HostTemplate `json:"hosts"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// VPCTemplate describes a VPC and its subnets.
type VPCTemplate struct {
	ID      string           `json:"id,omitempty"`
	OwnerID string           `json:"-"`
	RangeID string           `json:"-"` // empty for standalone templates
	Name    string           `json:"name"`
	CIDR    string           `json:"cidr"`
	Subnets []SubnetTemplate `json:"subnets"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// RangeTemplate is the top-level deployable blueprint: one VPC, a provider,
// and optional access tooling flags.
type RangeTemplate struct {
	ID       string      `json:"id,omitempty"`
	OwnerID  string      `json:"-"`
	Name     string      `json:"name"`
	Provider Provider    `json:"provider"`
	VPC      VPCTemplate `json:"vpc"`
	VNC      bool        `json:"vnc"`
	VPN      bool        `json:"vpn"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// TemplateHeader is the listing projection for any template kind.
type TemplateHeader struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
