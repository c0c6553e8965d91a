// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - the error base
type GenericError string

// to allow for different classes of errors
type (
	// AccessError - permission failures: a missing or wrong capability
	AccessError GenericError

	// ExistsError - item already exists / was already finished
	ExistsError GenericError

	// InvalidError - invalid arguments or state for the operation
	InvalidError GenericError

	// NotFoundError - item does not exist
	NotFoundError GenericError

	// ProcessError - processing failed part way
	ProcessError GenericError
)

// common errors - keep in alphabetic order
var (
	AlreadyClosed             = ExistsError("already closed")
	AlreadyExclusivelyListed  = ExistsError("already exclusively listed")
	AlreadyInitialised        = ExistsError("already initialised")
	AlreadyListed             = ExistsError("already listed")
	AmountOverflow            = InvalidError("amount overflow")
	AssetAlreadyHeld          = ExistsError("asset already held")
	BidNotFound               = NotFoundError("bid not found")
	CannotDecodeBidId         = InvalidError("cannot decode bid id")
	CannotDecodeCapability    = InvalidError("cannot decode capability")
	CannotDecodePrincipal     = InvalidError("cannot decode principal")
	CannotDecodeVaultId       = InvalidError("cannot decode vault id")
	CertificateFileExists     = ExistsError("certificate file already exists")
	CommissionExceedsPrice    = InvalidError("commission exceeds price")
	CryptoFailed              = ProcessError("crypto failed")
	DataInconsistent          = ProcessError("data inconsistent")
	DuplicateMetadata         = ExistsError("duplicate metadata")
	IdentityNameExists        = ExistsError("identity name already exists")
	IdentityNameNotFound      = NotFoundError("identity name not found")
	InsufficientFunds         = InvalidError("insufficient funds")
	InvalidCount              = InvalidError("invalid count")
	InvalidDataDirectory      = InvalidError("invalid data directory")
	InvalidIpAddress          = InvalidError("invalid ip address")
	InvalidKeyLength          = InvalidError("invalid key length")
	InvalidPasswordLength     = InvalidError("invalid password length")
	InvalidSignature          = InvalidError("invalid signature")
	InvalidStructPointer      = InvalidError("invalid struct pointer")
	InvalidTypeTag            = InvalidError("invalid type tag")
	KeyFileExists             = ExistsError("key file already exists")
	MissingAsset              = NotFoundError("missing asset")
	MissingParameters         = InvalidError("missing parameters")
	MissingPayload            = InvalidError("missing payload")
	NotAuthorized             = AccessError("not authorized")
	NotInitialised            = ProcessError("not initialised")
	NotOwner                  = AccessError("not owner")
	NotVaultRecordPack        = InvalidError("not vault record pack")
	PasswordMismatch          = InvalidError("password mismatch")
	PolicyDenied              = AccessError("policy denied")
	RateLimiting              = ProcessError("rate limiting active")
	TransferRequestResolved   = ExistsError("transfer request already resolved")
	TypeMismatch              = InvalidError("type mismatch")
	UnresolvedTransferRequest = ProcessError("unresolved transfer request")
	VaultNotFound             = NotFoundError("vault not found")
	WrongPassword             = InvalidError("wrong password")
	ZeroAmount                = InvalidError("zero amount")
	ZeroPrice                 = InvalidError("zero price")
)

// Error - the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AccessError) Error() string   { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// IsErrAccess - determine if an access class error
func IsErrAccess(e error) bool { _, ok := e.(AccessError); return ok }

// IsErrExists - determine if an exists class error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine if an invalid class error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrNotFound - determine if a not found class error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine if a process class error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }
