package org

import "errors"

var (
	ErrInvalidOrganization  = errors.New("invalid organization")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrOrganizationExists   = errors.New("organization already exists")
	ErrInvalidMember        = errors.New("invalid member data")
	ErrMembershipNotFound   = errors.New("membership not found")
	ErrInvalidImportSource  = errors.New("invalid import source")
	ErrEnqueueImportJob     = errors.New("failed to enqueue member import job")
	ErrImportJobNotFound    = errors.New("import job not found")
)
