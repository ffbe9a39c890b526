package model

import "fmt"

// Provider identifies the cloud a range deploys to.
type Provider string

const (
	ProviderAWS   Provider = "aws"
	ProviderAzure Provider = "azure"
)

// Valid reports whether the provider is supported.
func (p Provider) Valid() bool {
	switch p {
	case ProviderAWS, ProviderAzure:
		return true
	}
	return false
}

// Region is a supported cloud region.
type Region string

const (
	RegionUSEast1 Region = "us_east_1"
	RegionUSEast2 Region = "us_east_2"
)

// Valid reports whether the region is supported.
func (r Region) Valid() bool {
	switch r {
	case RegionUSEast1, RegionUSEast2:
		return true
	}
	return false
}

// RangeState tracks the lifecycle of a deployed range.
type RangeState string

const (
	RangeStateOn         RangeState = "on"
	RangeStateOff        RangeState = "off"
	RangeStateStarting   RangeState = "start"
	RangeStateStopping   RangeState = "stop"
	RangeStateDeploying  RangeState = "deploying"
	RangeStateDestroying RangeState = "destroying"
)

// OSImage is a supported machine image.
type OSImage string

const (
	OSDebian11    OSImage = "debian_11"
	OSDebian12    OSImage = "debian_12"
	OSUbuntu2204  OSImage = "ubuntu_22_04"
	OSKali        OSImage = "kali"
	OSWindows2019 OSImage = "windows_2019"
	OSWindows2022 OSImage = "windows_2022"
)

// Valid reports whether the OS image is supported.
func (o OSImage) Valid() bool {
	switch o {
	case OSDebian11, OSDebian12, OSUbuntu2204, OSKali, OSWindows2019, OSWindows2022:
		return true
	}
	return false
}

// InstanceSpec is a coarse RAM/CPU sizing class.
type InstanceSpec string

const (
	SpecTiny   InstanceSpec = "tiny"
	SpecSmall  InstanceSpec = "small"
	SpecMedium InstanceSpec = "medium"
	SpecLarge  InstanceSpec = "large"
	SpecHuge   InstanceSpec = "huge"
)

// Valid reports whether the spec is supported.
func (s InstanceSpec) Valid() bool {
	switch s {
	case SpecTiny, SpecSmall, SpecMedium, SpecLarge, SpecHuge:
		return true
	}
	return false
}

// AWSInstanceType maps a sizing class to a concrete AWS instance type.
func AWSInstanceType(s InstanceSpec) (string, error) {
	types := map[InstanceSpec]string{
		SpecTiny:   "t3.micro",
		SpecSmall:  "t3.small",
		SpecMedium: "t3.medium",
		SpecLarge:  "t3.large",
		SpecHuge:   "t3.xlarge",
	}
	t, ok := types[s]
	if !ok {
		return "", fmt.Errorf("unsupported instance spec: %s", s)
	}
	return t, nil
}

// AWSRegionName maps a region enum to the AWS region identifier.
func AWSRegionName(r Region) (string, error) {
	names := map[Region]string{
		RegionUSEast1: "us-east-1",
		RegionUSEast2: "us-east-2",
	}
	n, ok := names[r]
	if !ok {
		return "", fmt.Errorf("unsupported region: %s", r)
	}
	return n, nil
}

// AWSImageAMI maps an OS image enum to an AMI in us-east regions.
func AWSImageAMI(o OSImage) (string, error) {
	amis := map[OSImage]string{
		OSDebian11:    "ami-0e9089763828757e1",
		OSDebian12:    "ami-064519b8c76274859",
		OSUbuntu2204:  "ami-0e1bed4f06a3b463d",
		OSKali:        "ami-0a1b36900d715a3ad",
		OSWindows2019: "ami-0f9c44e98edf38a2b",
		OSWindows2022: "ami-0069eac59d05ae12b",
	}
	a, ok := amis[o]
	if !ok {
		return "", fmt.Errorf("unsupported OS image: %s", o)
	}
	return a, nil
}
