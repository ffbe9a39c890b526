package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"rangeapi/internal/model"
)

func validRange() model.RangeTemplate {
	return model.RangeTemplate{
		Name:     "example-range-1",
		Provider: model.ProviderAWS,
		VPC: model.VPCTemplate{
			Name: "example-vpc-1",
			CIDR: "192.168.0.0/16",
			Subnets: []model.SubnetTemplate{
				{
					Name: "example-subnet-1",
					CIDR: "192.168.1.0/24",
					Hosts: []model.HostTemplate{
						{
							Hostname: "example-host-1",
							OS:       model.OSDebian11,
							Spec:     model.SpecTiny,
							SizeGB:   8,
							Tags:     []string{"web", "linux"},
						},
					},
				},
			},
		},
	}
}

func TestValidateRangeTemplate(t *testing.T) {
	r := validRange()
	assert.NoError(t, ValidateRangeTemplate(&r))
}

func TestValidateRangeTemplateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *model.RangeTemplate)
		wantMsg string
	}{
		{
			name:    "missing name",
			mutate:  func(r *model.RangeTemplate) { r.Name = "" },
			wantMsg: "range name is required",
		},
		{
			name:    "bad provider",
			mutate:  func(r *model.RangeTemplate) { r.Provider = "gcp" },
			wantMsg: "unsupported provider",
		},
		{
			name:    "bad vpc cidr",
			mutate:  func(r *model.RangeTemplate) { r.VPC.CIDR = "300.0.0.0/8" },
			wantMsg: "invalid vpc cidr",
		},
		{
			name:    "subnet outside vpc",
			mutate:  func(r *model.RangeTemplate) { r.VPC.Subnets[0].CIDR = "10.0.1.0/24" },
			wantMsg: "not contained in vpc cidr",
		},
		{
			name:    "bad hostname",
			mutate:  func(r *model.RangeTemplate) { r.VPC.Subnets[0].Hosts[0].Hostname = "-bad" },
			wantMsg: "invalid hostname",
		},
		{
			name:    "empty tag",
			mutate:  func(r *model.RangeTemplate) { r.VPC.Subnets[0].Hosts[0].Tags = []string{" "} },
			wantMsg: "tags must not be empty",
		},
		{
			name:    "zero disk",
			mutate:  func(r *model.RangeTemplate) { r.VPC.Subnets[0].Hosts[0].SizeGB = 0 },
			wantMsg: "disk size must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRange()
			tt.mutate(&r)
			err := ValidateRangeTemplate(&r)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestIsValidUUID4(t *testing.T) {
	assert.True(t, IsValidUUID4(uuid.NewString()))
	assert.False(t, IsValidUUID4("not-a-uuid"))
	assert.False(t, IsValidUUID4(""))
	// v1 UUID is well-formed but the wrong version
	assert.False(t, IsValidUUID4("f47ac10b-58cc-1372-a567-0e02b2c3d479"))
}
