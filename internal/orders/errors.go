package orders

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRecord      = errors.New("invalid order record")
	ErrOrderNotFound      = errors.New("order not found")
	ErrReadingOrdersFile  = errors.New("failed to read orders file")
	ErrScanningOrders     = errors.New("failed to scan orders table")
	ErrUnmarshallingOrder = errors.New("failed to unmarshal order record")
)

func ErrorInvalidRecord(id, field string, cause error) error {
	return fmt.Errorf("%w: id=%s field=%s cause=%v", ErrInvalidRecord, id, field, cause)
}

func ErrorOrderNotFound(table, id string) error {
	return fmt.Errorf("%w: table=%s id=%s", ErrOrderNotFound, table, id)
}

func ErrorReadingOrdersFile(path string, cause error) error {
	return fmt.Errorf("%w: path=%s cause=%v", ErrReadingOrdersFile, path, cause)
}

func ErrorScanningOrders(table string, cause error) error {
	return fmt.Errorf("%w: table=%s cause=%v", ErrScanningOrders, table, cause)
}

func ErrorUnmarshallingOrder(cause error) error {
	return fmt.Errorf("%w: cause=%v", ErrUnmarshallingOrder, cause)
}
