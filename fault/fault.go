// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised     = ExistsError("already initialised")
	ErrBalanceViolation       = InvalidError("node balance is out of range")
	ErrConfigurationNotStruct = InvalidError("configuration target is not a struct pointer")
	ErrCountMismatch          = InvalidError("member count does not match tree")
	ErrForeignLink            = InvalidError("link belongs to another tree")
	ErrHeightMismatch         = InvalidError("node height is incorrect")
	ErrInvalidCount           = InvalidError("count must be positive")
	ErrInvalidLoggerChannel   = InvalidError("invalid logger channel")
	ErrInvalidTask            = InvalidError("invalid task")
	ErrMissingConfigFile      = NotFoundError("configuration file is required")
	ErrOrderViolation         = InvalidError("keys are out of order")
	ErrOwnerMismatch          = InvalidError("link owner does not match")
	ErrParentMismatch         = InvalidError("parent link is inconsistent")
	ErrSentinelRoot           = InvalidError("sentinel root is stale")
	ErrSoakAborted            = ProcessError("soak run aborted")
	ErrTaskExists             = ExistsError("task already scheduled")
	ErrTaskNotFound           = NotFoundError("task not found")
	ErrTreeMismatch           = ProcessError("schedule trees disagree")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool  { var x InvalidError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool  { var x ProcessError; return errors.As(e, &x) }
