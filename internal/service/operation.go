package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jrconcha-strat/taskboard/internal/domain"
	"github.com/jrconcha-strat/taskboard/internal/logger"
	"github.com/jrconcha-strat/taskboard/internal/repository"
)

// operations - общая часть всех сервисов: менеджер транзакций и логгер.
type operations struct {
	tx  repository.TxManager
	log logrus.FieldLogger
}

// inTx выполняет fn в одной транзакции; каждой операции присваивается op_id для логов.
func (o operations) inTx(ctx context.Context, op string, fn func(repos *repository.Repositories) error) error {
	log := o.log.WithFields(logrus.Fields{
		"op":    op,
		"op_id": uuid.NewString(),
	})

	start := time.Now()
	if err := o.tx.WithinTx(ctx, nil, fn); err != nil {
		log.WithField("duration", time.Since(start)).Debug("transaction rolled back")
		return err
	}

	log.WithField("duration", time.Since(start)).Debug("transaction committed")
	return nil
}

// fail - граница операции: любая ошибка превращается в неуспешный Result.
// Штатные доменные ошибки пишутся как предупреждения, остальные уходят в Sentry.
func fail[T any](o operations, op string, err error) domain.Result[T] {
	domainErr := domain.AsDomainError(err)

	if domain.IsExpected(err) {
		o.log.WithFields(logrus.Fields{
			"op":   op,
			"code": domainErr.Code,
		}).Warn(domainErr.Message)
	} else {
		logger.CaptureError(o.log, domainErr.Code, err, logrus.Fields{"op": op})
	}

	return domain.Fail[T](domainErr.Message, domainErr)
}

// failedAs переносит неуспешный результат в Result другого типа.
func failedAs[U, T any](r domain.Result[T]) domain.Result[U] {
	return domain.Result[U]{Message: r.Message, Error: r.Error}
}

func valueOf[V any](p *V) V {
	var zero V
	if p == nil {
		return zero
	}
	return *p
}
