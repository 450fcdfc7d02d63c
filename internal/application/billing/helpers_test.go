package billing_test

import "github.com/jhoicas/Gestion-api/internal/domain/repository"

func repositoryAll() repository.InvoiceFilter { return repository.InvoiceFilter{} }

func movementAll() repository.MovementFilter { return repository.MovementFilter{} }

func sortDefault() repository.Sort { return repository.Sort{} }
