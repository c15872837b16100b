// Package users persists registered users as fixed-width records and
// provides registration, field updates, removal, and authentication on top
// of the generic record store.
package users

import "github.com/openfleet/carrent/pkg/codec"

// Field widths on disk. PasswordHash is exactly a bcrypt hash.
const (
	fullNameWidth = 40
	addressWidth  = 40
	contactWidth  = 20
	emailWidth    = 40
	usernameWidth = 20
	passwordWidth = 60

	recordSize = fullNameWidth + addressWidth + contactWidth +
		emailWidth + usernameWidth + passwordWidth
)

// User is one registered account. PasswordHash holds the bcrypt hash, never
// the plaintext password.
type User struct {
	FullName     string
	Address      string
	Contact      string
	Email        string
	Username     string
	PasswordHash string
}

// UserCodec serializes users into their fixed 220-byte record.
type UserCodec struct{}

// NewUserCodec creates a user codec.
func NewUserCodec() *UserCodec {
	return &UserCodec{}
}

// Size returns the constant record size.
func (*UserCodec) Size() int {
	return recordSize
}

// Encode serializes u. Over-long fields are rejected with *codec.FieldError.
func (*UserCodec) Encode(u User) ([]byte, error) {
	buf := make([]byte, recordSize)

	off := 0
	for _, f := range []struct {
		name  string
		width int
		value string
	}{
		{"full_name", fullNameWidth, u.FullName},
		{"address", addressWidth, u.Address},
		{"contact", contactWidth, u.Contact},
		{"email", emailWidth, u.Email},
		{"username", usernameWidth, u.Username},
		{"password_hash", passwordWidth, u.PasswordHash},
	} {
		if err := codec.PutString(buf, off, f.width, f.name, f.value); err != nil {
			return nil, err
		}
		off += f.width
	}

	return buf, nil
}

// Decode deserializes one record.
func (*UserCodec) Decode(buf []byte) (User, error) {
	if len(buf) != recordSize {
		return User{}, &codec.FieldError{Field: "user record", Width: recordSize, Len: len(buf)}
	}

	var u User
	off := 0
	u.FullName = codec.GetString(buf, off, fullNameWidth)
	off += fullNameWidth
	u.Address = codec.GetString(buf, off, addressWidth)
	off += addressWidth
	u.Contact = codec.GetString(buf, off, contactWidth)
	off += contactWidth
	u.Email = codec.GetString(buf, off, emailWidth)
	off += emailWidth
	u.Username = codec.GetString(buf, off, usernameWidth)
	off += usernameWidth
	u.PasswordHash = codec.GetString(buf, off, passwordWidth)

	return u, nil
}
