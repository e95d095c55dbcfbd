package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/jmoiron/sqlx"
)

// Queryer is satisfied by both Conn and *sqlx.Tx so helpers can run either standalone or inside WithTx.
type Queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func WithTx(ctx context.Context, reason string, fn func(tx *sqlx.Tx) error) error {
	return withTx(ctx, nil, reason, fn)
}

func WithTxOpts(ctx context.Context, opts *sql.TxOptions, reason string, fn func(tx *sqlx.Tx) error) error {
	return withTx(ctx, opts, reason, fn)
}

func withTx(ctx context.Context, opts *sql.TxOptions, reason string, fn func(tx *sqlx.Tx) error) (err error) {
	log.Printf("starting transaction: (%s)", reason)

	tx, err := Conn.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("error starting transaction: %v", err)
	}

	var committed bool

	defer func() {
		if panicErr := recover(); panicErr != nil {
			log.Printf("panic in WithTx (%s): %v\n%s", reason, panicErr, debug.Stack())
			err = fmt.Errorf("panic in transaction (%s): %v", reason, panicErr)
		}

		if committed {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil {
			if rbErr != sql.ErrTxDone {
				log.Printf("transaction rollback error: (%s) %v\n", reason, rbErr)
			}
		} else {
			log.Printf("transaction rolled back: (%s)", reason)
		}
	}()

	err = fn(tx)
	if err != nil {
		log.Printf("error in WithTx (%s): %v", reason, err)
		return err
	}

	err = tx.Commit()
	if err != nil {
		log.Printf("error committing transaction: (%s) %v", reason, err)
		return fmt.Errorf("error committing transaction: %v", err)
	}

	committed = true

	log.Printf("committed transaction: (%s)", reason)

	return nil
}
