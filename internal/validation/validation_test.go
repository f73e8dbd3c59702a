// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,max=128"`
	Kind     string `form:"kind" validate:"omitempty,oneof=photo video"`
}

func TestValidate_OK(t *testing.T) {
	err := Validate(loginForm{Email: "admin@atsaka.co.id", Password: "secret"})
	assert.NoError(t, err)
}

func TestValidate_FieldErrors(t *testing.T) {
	err := Validate(loginForm{Email: "not-an-email", Kind: "audio"})
	require.Error(t, err)

	fe, ok := AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "harus berupa alamat email yang valid", fe["email"])
	assert.Equal(t, "wajib diisi", fe["password"])
	assert.Equal(t, "harus salah satu dari: photo video", fe["kind"])
	assert.True(t, fe.Has("email"))
	assert.False(t, fe.Has("name"))
}

func TestErrors_Error(t *testing.T) {
	e := Errors{"name": "wajib diisi", "email": "wajib diisi"}
	assert.Equal(t, "email: wajib diisi; name: wajib diisi", e.Error())

	e.Add("name", "other")
	assert.Equal(t, "wajib diisi", e["name"], "first message wins")
}

func TestAsErrors_OtherError(t *testing.T) {
	_, ok := AsErrors(errors.New("boom"))
	assert.False(t, ok)
}
