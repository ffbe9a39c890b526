// Package deploy turns range templates into terraform plans and applies them
// through a pluggable Deployer.
package deploy

import (
	"encoding/json"
	"fmt"
	"strings"

	"rangeapi/internal/model"
)

// Default public key baked into synthesized key pairs.
// TODO(provisioning): accept a per-user key at deploy time instead.
const defaultDeployKey = "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIH8URIMqVKb6EAK4O+E+9g8df1uvcOfpvPFl7sQrX7KM ops@rangeapi"

// Plan is a fully rendered terraform configuration for one range.
type Plan struct {
	ID     string
	Name   string
	Region string
	Stack  map[string]any
}

// JSON renders the plan's terraform configuration.
func (p *Plan) JSON() ([]byte, error) {
	return json.MarshalIndent(p.Stack, "", "  ")
}

// Synthesize renders the terraform stack for a range template: the VPC, a
// public jump-box subnet with internet and NAT gateways, route tables, and
// security groups that only admit traffic from the jump box or between the
// range's own subnets, then one instance per host.
func Synthesize(tpl *model.RangeTemplate, region model.Region, deployID string) (*Plan, error) {
	if tpl.Provider != model.ProviderAWS {
		return nil, fmt.Errorf("unsupported provider: %s", tpl.Provider)
	}

	regionName, err := model.AWSRegionName(region)
	if err != nil {
		return nil, err
	}

	publicCIDR, err := publicSubnetCIDR(tpl.VPC.CIDR)
	if err != nil {
		return nil, err
	}

	privateCIDRs := make([]string, 0, len(tpl.VPC.Subnets))
	for _, s := range tpl.VPC.Subnets {
		privateCIDRs = append(privateCIDRs, s.CIDR)
	}

	vpc := map[string]any{
		"cidr_block":           tpl.VPC.CIDR,
		"enable_dns_support":   true,
		"enable_dns_hostnames": true,
		"tags":                 map[string]string{"Name": tpl.VPC.Name},
	}

	subnets := map[string]any{
		"public": map[string]any{
			"vpc_id":                  ref("aws_vpc", "range"),
			"cidr_block":              publicCIDR,
			"map_public_ip_on_launch": true,
			"availability_zone":       regionName + "a",
			"tags":                    map[string]string{"Name": "RangePublicSubnet"},
		},
	}

	securityGroups := map[string]any{
		"jumpbox": map[string]any{
			"vpc_id": ref("aws_vpc", "range"),
			"tags":   map[string]string{"Name": "RangeJumpBoxSecurityGroup"},
		},
		"private": map[string]any{
			"vpc_id": ref("aws_vpc", "range"),
			"tags":   map[string]string{"Name": "RangePrivateInternalSecurityGroup"},
		},
	}

	securityGroupRules := map[string]any{
		"jumpbox_ssh_in": map[string]any{
			"type":              "ingress",
			"from_port":         22,
			"to_port":           22,
			"protocol":          "tcp",
			"cidr_blocks":       []string{"0.0.0.0/0"},
			"security_group_id": ref("aws_security_group", "jumpbox"),
		},
		"jumpbox_all_out": map[string]any{
			"type":              "egress",
			"from_port":         0,
			"to_port":           0,
			"protocol":          "-1",
			"cidr_blocks":       []string{"0.0.0.0/0"},
			"security_group_id": ref("aws_security_group", "jumpbox"),
		},
		"private_from_jumpbox": map[string]any{
			"type":                     "ingress",
			"from_port":                0,
			"to_port":                  0,
			"protocol":                 "-1",
			"security_group_id":        ref("aws_security_group", "private"),
			"source_security_group_id": ref("aws_security_group", "jumpbox"),
		},
		"private_internal": map[string]any{
			"type":              "ingress",
			"from_port":         0,
			"to_port":           0,
			"protocol":          "-1",
			"cidr_blocks":       privateCIDRs,
			"security_group_id": ref("aws_security_group", "private"),
		},
		"private_all_out": map[string]any{
			"type":              "egress",
			"from_port":         0,
			"to_port":           0,
			"protocol":          "-1",
			"cidr_blocks":       []string{"0.0.0.0/0"},
			"security_group_id": ref("aws_security_group", "private"),
		},
	}

	instances := map[string]any{
		"jumpbox": map[string]any{
			"ami":                         jumpboxAMI,
			"instance_type":               "t3.micro",
			"subnet_id":                   ref("aws_subnet", "public"),
			"vpc_security_group_ids":      []string{ref("aws_security_group", "jumpbox")},
			"key_name":                    ref("aws_key_pair", "range", "key_name"),
			"associate_public_ip_address": true,
			"tags":                        map[string]string{"Name": "RangeJumpBox"},
		},
	}

	for _, subnet := range tpl.VPC.Subnets {
		// User-derived labels carry a prefix so they can never collide with
		// the reserved public/jumpbox resources.
		snName := "subnet_" + resourceName(subnet.Name)
		if _, ok := subnets[snName]; ok {
			return nil, fmt.Errorf("subnet %q: label %s already in use", subnet.Name, snName)
		}
		subnets[snName] = map[string]any{
			"vpc_id":            ref("aws_vpc", "range"),
			"cidr_block":        subnet.CIDR,
			"availability_zone": regionName + "a",
			"tags":              map[string]string{"Name": subnet.Name},
		}

		for _, host := range subnet.Hosts {
			ami, err := model.AWSImageAMI(host.OS)
			if err != nil {
				return nil, fmt.Errorf("host %s: %w", host.Hostname, err)
			}
			itype, err := model.AWSInstanceType(host.Spec)
			if err != nil {
				return nil, fmt.Errorf("host %s: %w", host.Hostname, err)
			}
			hostName := "host_" + resourceName(host.Hostname)
			if _, ok := instances[hostName]; ok {
				return nil, fmt.Errorf("host %s: label %s already in use", host.Hostname, hostName)
			}
			instances[hostName] = map[string]any{
				"ami":                    ami,
				"instance_type":          itype,
				"subnet_id":              ref("aws_subnet", snName),
				"vpc_security_group_ids": []string{ref("aws_security_group", "private")},
				"key_name":               ref("aws_key_pair", "range", "key_name"),
				"root_block_device": map[string]any{
					"volume_size": host.SizeGB,
				},
				"tags": map[string]string{"Name": host.Hostname},
			}
		}
	}

	stack := map[string]any{
		"terraform": map[string]any{
			"required_providers": map[string]any{
				"aws": map[string]any{
					"source": "hashicorp/aws",
				},
			},
		},
		"provider": map[string]any{
			"aws": map[string]any{"region": regionName},
		},
		"resource": map[string]any{
			"aws_vpc": map[string]any{"range": vpc},
			"aws_internet_gateway": map[string]any{
				"range": map[string]any{
					"vpc_id": ref("aws_vpc", "range"),
					"tags":   map[string]string{"Name": "RangeInternetGateway"},
				},
			},
			"aws_eip": map[string]any{
				"nat": map[string]any{
					"tags": map[string]string{"Name": "RangeNatEIP"},
				},
			},
			"aws_nat_gateway": map[string]any{
				"range": map[string]any{
					"subnet_id":     ref("aws_subnet", "public"),
					"allocation_id": ref("aws_eip", "nat"),
					"tags":          map[string]string{"Name": "RangeNatGateway"},
				},
			},
			"aws_key_pair": map[string]any{
				"range": map[string]any{
					"key_name":   "range-" + deployID,
					"public_key": defaultDeployKey,
				},
			},
			"aws_route_table": map[string]any{
				"public": map[string]any{
					"vpc_id": ref("aws_vpc", "range"),
					"route": []map[string]any{
						{"cidr_block": "0.0.0.0/0", "gateway_id": ref("aws_internet_gateway", "range")},
					},
					"tags": map[string]string{"Name": "RangePublicRouteTable"},
				},
				"private": map[string]any{
					"vpc_id": ref("aws_vpc", "range"),
					"route": []map[string]any{
						{"cidr_block": "0.0.0.0/0", "nat_gateway_id": ref("aws_nat_gateway", "range")},
					},
					"tags": map[string]string{"Name": "RangePrivateRouteTable"},
				},
			},
			"aws_route_table_association": map[string]any{
				"public": map[string]any{
					"subnet_id":      ref("aws_subnet", "public"),
					"route_table_id": ref("aws_route_table", "public"),
				},
			},
			"aws_subnet":              subnets,
			"aws_security_group":      securityGroups,
			"aws_security_group_rule": securityGroupRules,
			"aws_instance":            instances,
		},
	}

	return &Plan{
		ID:     deployID,
		Name:   tpl.Name,
		Region: regionName,
		Stack:  stack,
	}, nil
}

// Kali image for the jump box in us-east regions.
const jumpboxAMI = "ami-0a1b36900d715a3ad"

// publicSubnetCIDR derives the jump-box subnet from the VPC CIDR by fixing
// the third octet to 99 and narrowing to /24.
func publicSubnetCIDR(vpcCIDR string) (string, error) {
	parts := strings.Split(vpcCIDR, "/")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid vpc cidr: %s", vpcCIDR)
	}
	octets := strings.Split(parts[0], ".")
	if len(octets) != 4 {
		return "", fmt.Errorf("invalid vpc cidr: %s", vpcCIDR)
	}
	octets[2] = "99"
	octets[3] = "0"
	return strings.Join(octets, ".") + "/24", nil
}

// ref builds a terraform interpolation reference to a resource attribute.
func ref(kind, name string, attr ...string) string {
	a := "id"
	if len(attr) > 0 {
		a = attr[0]
	}
	return fmt.Sprintf("${%s.%s.%s}", kind, name, a)
}

// resourceName normalizes a template name into a terraform resource label.
func resourceName(name string) string {
	s := strings.ToLower(name)
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
	return strings.Trim(s, "_")
}
