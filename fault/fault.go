// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ConflictError GenericError
type ContractError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError
type SignatureError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised        = ProcessError("already initialised")
	BalanceOverflow           = InvalidError("balance overflow")
	CannotDecodeAccount       = RecordError("cannot decode account")
	CertificateFileExists     = ExistsError("certificate file already exists")
	ChecksumMismatch          = RecordError("checksum mismatch")
	ConfigurationInvalid      = InvalidError("configuration is invalid")
	DuplicateParty            = ExistsError("duplicate party")
	EndpointClosed            = ProcessError("endpoint closed")
	FingerprintMismatch       = SignatureError("certificate fingerprint mismatch")
	FlowAlreadyStarted        = ProcessError("flow already started")
	FlowCancelled             = ProcessError("flow cancelled")
	FlowNotFound              = NotFoundError("flow not found")
	IdentityNotFound          = NotFoundError("identity not found")
	InputsNotAllowed          = ContractError("issuance must not consume inputs")
	InvalidAmount             = InvalidError("amount must be greater than zero")
	InvalidCount              = InvalidError("invalid count")
	InvalidCursor             = InvalidError("invalid cursor")
	InvalidIpAddress          = InvalidError("invalid IP address")
	InvalidKeyLength          = InvalidError("invalid key length")
	InvalidKeyType            = InvalidError("invalid key type")
	InvalidSeed               = InvalidError("invalid seed")
	InvalidSignature          = SignatureError("invalid signature")
	InvalidStructPointer      = InvalidError("invalid struct pointer")
	InvalidTimeWindow         = InvalidError("invalid time window")
	MissingContractAttachment = ContractError("missing contract attachment")
	MissingIdentity           = InvalidError("missing identity")
	MissingNotary             = InvalidError("missing notary")
	MissingParameters         = InvalidError("missing parameters")
	MissingSignature          = SignatureError("missing signature")
	NonPositiveAmount         = ContractError("output amount must be greater than zero")
	NotANotary                = InvalidError("node is not a notary")
	NotAParty                 = InvalidError("node is not a party")
	NotARequiredSigner        = SignatureError("not a required signer")
	NotInitialised            = ProcessError("not initialised")
	NotDigest                 = RecordError("not a digest")
	NotTokenState             = ContractError("output is not a token state")
	NotTransactionPack        = RecordError("not transaction pack")
	NotarisationConflict      = ConflictError("input state already consumed")
	OutputNotFound            = NotFoundError("output not found")
	OutsideTimeWindow         = InvalidError("outside time window")
	PartyNotFound             = NotFoundError("party not found")
	RateLimiting              = InvalidError("rate limiting")
	TransactionIdMismatch     = RecordError("transaction id mismatch")
	TransactionNotFound       = NotFoundError("transaction not found")
	TruncatedRecord           = RecordError("truncated record")
	UnexpectedResponse        = ProcessError("unexpected response")
	UnknownCommand            = ContractError("unknown command")
	UnknownContract           = ContractError("unknown contract")
	UnknownTopic              = InvalidError("unknown topic")
	WrongCommandCount         = ContractError("transaction must carry exactly one command")
	WrongContract             = ContractError("output is governed by a different contract")
	WrongIssueSigners         = ContractError("issue must be signed by the issuer alone")
	WrongNotary               = InvalidError("transaction is for a different notary")
	WrongOutputCount          = ContractError("issuance must create exactly one output")
	WrongOutputNotary         = ContractError("output notary differs from transaction notary")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ConflictError) Error() string  { return string(e) }
func (e ContractError) Error() string  { return string(e) }
func (e ExistsError) Error() string    { return string(e) }
func (e InvalidError) Error() string   { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }
func (e ProcessError) Error() string   { return string(e) }
func (e RecordError) Error() string    { return string(e) }
func (e SignatureError) Error() string { return string(e) }

// determine the class of an error
func IsErrConflict(e error) bool  { _, ok := e.(ConflictError); return ok }
func IsErrContract(e error) bool  { _, ok := e.(ContractError); return ok }
func IsErrExists(e error) bool    { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool   { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool  { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool   { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool    { _, ok := e.(RecordError); return ok }
func IsErrSignature(e error) bool { _, ok := e.(SignatureError); return ok }

// all errors that can be recovered from their text
var known = []error{
	AlreadyInitialised, BalanceOverflow, CannotDecodeAccount, CertificateFileExists, ChecksumMismatch,
	ConfigurationInvalid, DuplicateParty, EndpointClosed, FingerprintMismatch,
	FlowAlreadyStarted, FlowCancelled, FlowNotFound, IdentityNotFound, InputsNotAllowed, InvalidAmount, InvalidCount,
	InvalidCursor, InvalidIpAddress, InvalidKeyLength, InvalidKeyType, InvalidSeed,
	InvalidSignature, InvalidStructPointer, InvalidTimeWindow, MissingContractAttachment,
	MissingIdentity, MissingNotary, MissingParameters, MissingSignature,
	NonPositiveAmount, NotANotary, NotAParty, NotARequiredSigner, NotDigest,
	NotInitialised, NotTokenState, NotTransactionPack, NotarisationConflict,
	OutputNotFound, OutsideTimeWindow, PartyNotFound, RateLimiting,
	TransactionIdMismatch, TransactionNotFound, TruncatedRecord,
	UnexpectedResponse, UnknownCommand, UnknownContract, UnknownTopic,
	WrongCommandCount, WrongContract, WrongIssueSigners, WrongNotary,
	WrongOutputCount, WrongOutputNotary,
}

// Lookup - convert the text of an error received from a remote
// node back into the matching error instance
//
// unrecognised text becomes a ProcessError
func Lookup(text string) error {
	for _, e := range known {
		if e.Error() == text {
			return e
		}
	}
	return ProcessError(text)
}
