package app

import (
	"context"
	"fmt"

	blogRepository "github.com/allisson/blogs/internal/blog/repository"
	blogStorage "github.com/allisson/blogs/internal/blog/storage"
	blogUsecase "github.com/allisson/blogs/internal/blog/usecase"
)

// BlogRepository returns the blog repository based on the database driver.
func (c *Container) BlogRepository() (blogUsecase.BlogRepository, error) {
	var err error
	c.blogRepoInit.Do(func() {
		c.blogRepo, err = c.initBlogRepository()
		if err != nil {
			c.initErrors["blogRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["blogRepo"]; exists {
		return nil, storedErr
	}
	return c.blogRepo, nil
}

// ImageStore returns the blob-backed image store.
func (c *Container) ImageStore() (blogStorage.ImageStore, error) {
	var err error
	c.imageStoreInit.Do(func() {
		c.imageStore, err = c.initImageStore()
		if err != nil {
			c.initErrors["imageStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["imageStore"]; exists {
		return nil, storedErr
	}
	return c.imageStore, nil
}

// BlogUseCase returns the blog use case instance.
// The use case is wrapped with metrics instrumentation.
func (c *Container) BlogUseCase() (blogUsecase.UseCase, error) {
	var err error
	c.blogUseCaseInit.Do(func() {
		c.blogUseCase, err = c.initBlogUseCase()
		if err != nil {
			c.initErrors["blogUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["blogUseCase"]; exists {
		return nil, storedErr
	}
	return c.blogUseCase, nil
}

// initBlogRepository creates the blog repository instance.
func (c *Container) initBlogRepository() (blogUsecase.BlogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for blog repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return blogRepository.NewMySQLBlogRepository(db), nil
	case "postgres":
		return blogRepository.NewPostgreSQLBlogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initImageStore opens the configured bucket and wraps it in a BlobImageStore.
func (c *Container) initImageStore() (blogStorage.ImageStore, error) {
	c.imageBucketInit.Do(func() {
		bucket, err := blogStorage.OpenBucket(context.Background(), c.config.ImageBucketURL)
		if err != nil {
			c.initErrors["imageBucket"] = err
			return
		}
		c.imageBucket = bucket
	})
	if storedErr, exists := c.initErrors["imageBucket"]; exists {
		return nil, fmt.Errorf("failed to open image bucket: %w", storedErr)
	}

	return blogStorage.NewBlobImageStore(c.imageBucket, c.config.ImageBaseURL), nil
}

// initBlogUseCase creates the blog use case with all its dependencies.
func (c *Container) initBlogUseCase() (blogUsecase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for blog use case: %w", err)
	}

	blogRepo, err := c.BlogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get blog repository for blog use case: %w", err)
	}

	commentRepo, err := c.CommentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get comment repository for blog use case: %w", err)
	}

	imageStore, err := c.ImageStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get image store for blog use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for blog use case: %w", err)
	}

	useCaseConfig := blogUsecase.Config{
		TitleMinLength:       c.config.BlogTitleMinLength,
		DescriptionMinLength: c.config.BlogDescriptionMinLength,
	}

	useCase := blogUsecase.NewBlogUseCase(txManager, blogRepo, commentRepo, imageStore, useCaseConfig)

	return blogUsecase.NewBlogUseCaseWithMetrics(useCase, businessMetrics), nil
}
