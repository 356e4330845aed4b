package org

import "errors"

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrNameTaken            = errors.New("organization name already exists")
	ErrMembershipNotFound   = errors.New("membership not found")
	ErrInvalidRole          = errors.New("invalid role")
	ErrImportJobNotFound    = errors.New("import job not found")
)
