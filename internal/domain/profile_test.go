package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileEqual(t *testing.T) {
	dob := Date{Year: 1999, Month: 8, Day: 2}
	p := Profile{FirstName: "John", LastName: "Doe", DOB: dob}

	assert.True(t, p.Equal(Profile{FirstName: "john", LastName: "DOE", DOB: dob}))
	assert.False(t, p.Equal(Profile{FirstName: "Jane", LastName: "Doe", DOB: dob}))
	assert.False(t, p.Equal(Profile{FirstName: "John", LastName: "Doe", DOB: Date{Year: 1999, Month: 8, Day: 3}}))
}

func TestProfileCompare(t *testing.T) {
	dob := Date{Year: 1999, Month: 8, Day: 2}
	doe := Profile{FirstName: "John", LastName: "Doe", DOB: dob}
	smith := Profile{FirstName: "Alice", LastName: "Smith", DOB: dob}

	assert.Negative(t, doe.Compare(smith))
	assert.Positive(t, smith.Compare(doe))

	jane := Profile{FirstName: "Jane", LastName: "Doe", DOB: dob}
	assert.Positive(t, doe.Compare(jane))

	older := Profile{FirstName: "John", LastName: "Doe", DOB: Date{Year: 1990, Month: 1, Day: 1}}
	assert.Positive(t, doe.Compare(older))
	assert.Zero(t, doe.Compare(Profile{FirstName: "JOHN", LastName: "doe", DOB: dob}))
}

func TestProfileString(t *testing.T) {
	p := Profile{FirstName: "April", LastName: "March", DOB: Date{Year: 1990, Month: 1, Day: 15}}
	assert.Equal(t, "April March 1/15/1990", p.String())
}
