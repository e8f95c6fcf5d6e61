package main

import (
	"github.com/lattice-sh/control-plane/common"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/bootstrap"
)

func main() {
	common.InitLocalEnvConfig()

	bootstrap.InitHierarchy().Run()
}
