package commands_test

import (
	"errors"
	"testing"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/domain/model/customer"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterCustomerCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewID()
	cmd, err := commands.NewRegisterCustomerCommand(id, "Jane Doe")
	require.NoError(t, err)

	repo := new(MockCustomerRepository)
	uow := new(MockUoW)
	factory := new(MockCustomerUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("CustomerRepository").Return(repo)
	isNewCustomer := mock.MatchedBy(func(c *customer.Customer) bool {
		return c.ID().IsEqual(id) && c.BottlesInHand() == 0 && c.Status() == customer.Active
	})
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Add", ctx, isNewCustomer).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	err = commands.NewRegisterCustomerCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRegisterCustomerCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterCustomerCommand(kernel.NewID(), "Jane Doe")
	require.NoError(t, err)

	repo := new(MockCustomerRepository)
	uow := new(MockUoW)
	factory := new(MockCustomerUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("CustomerRepository").Return(repo)
	uow.On("Begin", ctx).Return(nil).Once()
	repo.On("Add", ctx, mock.Anything).Return(errs.NewValueIsInvalidErrorWithCause("reference", errors.New("duplicate"))).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	err = commands.NewRegisterCustomerCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewRegisterCustomerCommand(t *testing.T) {
	_, err := commands.NewRegisterCustomerCommand(kernel.NewID(), "")
	require.ErrorIs(t, err, commands.ErrFullNameIsRequired)

	id := kernel.NewID()
	cmd, err := commands.NewRegisterCustomerCommand(id, "John Roe")
	require.NoError(t, err)
	assert.Equal(t, id, cmd.CustomerID())
	assert.Equal(t, "John Roe", cmd.FullName())
	assert.NoError(t, cmd.Validate())
	assert.ErrorIs(t, (commands.RegisterCustomerCommand{}).Validate(), commands.ErrRegisterCustomerCommandIsNotConstructed)
}
