package request

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()

	var errs validation.Errors
	require.True(t, errors.As(err, &errs), "got %v", err)

	return errs
}

func TestCPFRule(t *testing.T) {
	tests := []struct {
		cpf   string
		valid bool
	}{
		{"123.456.789-09", true},
		{"12345678909", true},
		{"123.456.78909", true},
		{"123456789-09", true},
		{"123.456789-09", false},
		{"123456.789-09", false},
		{"123-456-789.09", false},
		{"1234567890", false},
		{"abc.def.ghi-jk", false},
	}
	for _, tt := range tests {
		t.Run(tt.cpf, func(t *testing.T) {
			err := validation.Validate(tt.cpf, cpfRule)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, errInvalidCPF, err)
		})
	}

	var blank *string
	assert.NoError(t, validation.Validate(blank, cpfRule))
}

func TestDecimalRules(t *testing.T) {
	assert.NoError(t, validation.Validate(decimal.NewFromInt(1), positiveDecimal))
	assert.Equal(t, errNotPositive, validation.Validate(decimal.Zero, positiveDecimal))
	assert.Equal(t, errNegative, validation.Validate(decimal.NewFromInt(-1), nonNegativeDecimal))

	var missing *decimal.Decimal
	assert.NoError(t, validation.Validate(missing, positiveDecimal))

	err := validation.Validate("12", positiveDecimal)
	var internal validation.InternalError
	assert.True(t, errors.As(err, &internal))
}

func TestCreateNeedRequest(t *testing.T) {
	received := decimal.NewFromInt(-2)
	req := CreateNeedRequest{
		CollectionPointID: 1,
		QuantityNeeded:    decimal.Zero,
		QuantityReceived:  &received,
		Priority:          "urgent",
	}

	errs := fieldErrors(t, req.Validate())
	assert.Contains(t, errs, "item_type_id")
	assert.Contains(t, errs, "quantity_needed")
	assert.Contains(t, errs, "quantity_received")
	assert.Contains(t, errs, "priority")
	assert.NotContains(t, errs, "collection_point_id")

	req = CreateNeedRequest{CollectionPointID: 1, ItemTypeID: 2, QuantityNeeded: decimal.NewFromInt(100)}
	require.NoError(t, req.Validate())
	need := req.ToDomain()
	assert.True(t, need.QuantityReceived.IsZero())
}

func TestUpdateReceivedRequest(t *testing.T) {
	assert.Contains(t, fieldErrors(t, (&UpdateReceivedRequest{}).Validate()), "quantity_received")

	zero := decimal.Zero
	assert.NoError(t, (&UpdateReceivedRequest{QuantityReceived: &zero}).Validate())
}

func TestCreateDonationRequest(t *testing.T) {
	req := CreateDonationRequest{
		PersonID:          1,
		CollectionPointID: 2,
		Items: []DonationItemInput{
			{ItemTypeID: 1, Quantity: decimal.NewFromInt(3)},
			{ItemTypeID: 2, Quantity: decimal.NewFromInt(-1)},
		},
	}

	errs := fieldErrors(t, req.Validate())
	items := fieldErrors(t, errs["items"])
	assert.NotContains(t, items, "0")
	assert.Contains(t, fieldErrors(t, items["1"]), "quantity")

	req.Items[1].Quantity = decimal.NewFromFloat(0.5)
	require.NoError(t, req.Validate())

	donation, domainItems := req.ToDomain()
	assert.Equal(t, uint(2), donation.CollectionPointID)
	require.Len(t, domainItems, 2)
	assert.Equal(t, "0.5", domainItems[1].Quantity.String())
}

func TestCreatePersonRequest_ToDomain(t *testing.T) {
	blank := ""
	date := "1985-12-01"
	req := CreatePersonRequest{FullName: "Ana", CPF: &blank, BirthDate: &date, ProfileID: 3}
	require.NoError(t, req.Validate())

	person := req.ToDomain()
	assert.Nil(t, person.CPF)
	require.NotNil(t, person.BirthDate)
	assert.Equal(t, 12, int(person.BirthDate.Month()))

	bad := "01/12/1985"
	req.BirthDate = &bad
	assert.Contains(t, fieldErrors(t, req.Validate()), "birth_date")
}
