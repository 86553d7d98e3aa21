package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/diffaudit/internal/domain/repositories"
	csvRepo "github.com/rios0rios0/diffaudit/internal/infrastructure/repositories/csv"
	gitcliRepo "github.com/rios0rios0/diffaudit/internal/infrastructure/repositories/gitcli"
	gogitRepo "github.com/rios0rios0/diffaudit/internal/infrastructure/repositories/gogit"
	jsonlRepo "github.com/rios0rios0/diffaudit/internal/infrastructure/repositories/jsonl"
	promRepo "github.com/rios0rios0/diffaudit/internal/infrastructure/repositories/prometheus"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register dataset registry with every supported file format
	if err := container.Provide(func() *DatasetRegistry {
		reg := NewDatasetRegistry("csv")
		reg.Register("csv", csvRepo.NewDatasetRepository())
		reg.Register("jsonl", jsonlRepo.NewDatasetRepository())
		reg.Register("json", jsonlRepo.NewDatasetRepository())
		return reg
	}); err != nil {
		return err
	}
	if err := container.Provide(gogitRepo.NewHistoryRepository); err != nil {
		return err
	}
	if err := container.Provide(promRepo.NewMetricsRepository); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *DatasetRegistry) domainRepos.DatasetRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *gogitRepo.HistoryRepository) domainRepos.HistoryRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *promRepo.MetricsRepository) domainRepos.MetricsRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func() domainRepos.DiffRepositoryFactory {
		return func(binary string) domainRepos.DiffRepository {
			return gitcliRepo.NewDiffRepository(binary)
		}
	}); err != nil {
		return err
	}

	return nil
}
