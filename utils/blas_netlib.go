//go:build netlib

package utils

/*
#cgo CFLAGS: -O3 -march=native
#cgo LDFLAGS: -lopenblas -lm -lpthread
#include <cblas.h>
*/
import "C"

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// Built with -tags netlib the matrix kernels run on the system BLAS instead
// of the pure Go implementation.
func init() {
	blas64.Use(netblas.Implementation{})
	fmt.Println("Using native BLAS for matrix operations")
}
