// Package memory provides the volatile entity store behind the ports.UnitOfWork
// contract.
//
// All four collections (drivers, orders, the processed-event ledger and the
// event history) live in one Store guarded by a single exclusion domain.
// A UnitOfWork holds that domain from Begin until Commit or Rollback, so a
// delay event is either applied as a whole or not at all, and readers never
// see it half-applied.
//
// Basic usage:
//
//	store := memory.NewStore()
//	factory := memory.NewUnitOfWorkFactory(store)
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.DriverRepository().Add(ctx, d); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Writes made through the repositories are staged on the unit of work and
// reach the store only on Commit. Rollback discards them.
package memory
