package main

import (
	"context"
	"fmt"
	"io"

	"github.com/adampresley/picasa/cmd/picasa/internal/configuration"
	"github.com/adampresley/picasa/cmd/picasa/internal/source"
	"github.com/adampresley/picasa/pkg/models"
	"github.com/adampresley/picasa/pkg/services"
)

const (
	ActionCreate         = "create"
	ActionUpdate         = "update"
	ActionUpdateMetadata = "update-metadata"
	ActionDelete         = "delete"
)

func runAction(ctx context.Context, out io.Writer, config configuration.Config, photoService services.PhotoServicer, resolver source.Resolver) error {
	var (
		err    error
		entry  models.PhotoEntry
		params models.PhotoParams
	)

	params = models.PhotoParams{
		Title:       config.Title,
		Summary:     config.Summary,
		ContentType: config.ContentType,
		ETag:        config.ETag,
	}

	switch config.Action {
	case ActionCreate:
		if params, err = resolver.Resolve(ctx, config.File, params); err != nil {
			return err
		}

		entry, err = photoService.Create(ctx, config.AlbumID, params)

	case ActionUpdate:
		if params, err = resolver.Resolve(ctx, config.File, params); err != nil {
			return err
		}

		entry, err = photoService.Update(ctx, config.AlbumID, config.PhotoID, params)

	case ActionUpdateMetadata:
		entry, err = photoService.UpdateMetadata(ctx, config.AlbumID, config.PhotoID, params)

	case ActionDelete:
		if _, err = photoService.Delete(ctx, config.AlbumID, config.PhotoID, models.DestroyOptions{ETag: config.ETag}); err != nil {
			return err
		}

		_, err = fmt.Fprintf(out, "deleted photo %s from album %s\n", config.PhotoID, config.AlbumID)
		return err

	default:
		return fmt.Errorf("unknown action '%s'. valid actions are %s, %s, %s, and %s",
			config.Action, ActionCreate, ActionUpdate, ActionUpdateMetadata, ActionDelete)
	}

	if err != nil {
		return err
	}

	return printEntry(out, entry)
}

func printEntry(out io.Writer, entry models.PhotoEntry) error {
	editURL, _ := entry.EditLink()
	mediaURL := ""

	if link, ok := entry.FindLink(models.RelEditMedia); ok {
		mediaURL = link.Href
	}

	_, err := fmt.Fprintf(out, "id:         %s\nalbum:      %s\ntitle:      %s\nsummary:    %s\netag:       %s\nedit:       %s\nedit-media: %s\ncontent:    %s\n",
		entry.PhotoID,
		entry.AlbumID,
		entry.Title,
		entry.Summary,
		entry.ETag,
		editURL,
		mediaURL,
		entry.Content.Src,
	)

	return err
}
