// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the wire types shared between the backend gateway
and the page handlers.

# Request Types

Types serialized into outgoing backend calls:

  - RegisterRequest: username, password
  - ProfileRequest: bio, nickname, profilePictureRelativePath
  - ReviewRequest: gameId, content, score
  - CreateGameForm: multipart game-creation payload (fields + cover art)

# Response Types

Types decoded from backend responses:

  - TokenResponse: access_token, token_type
  - AdminStatusResponse: is_admin
  - ErrorResponse: detail

# Domain Types

Entities fetched per view and held only in transient view state:

  - User: id, username
  - Game: metadata plus genre and platform sets and rating aggregates
  - Review: one per (user, game), score 0-100
  - Profile: bio, unique nickname, picture path

# Conventions

JSON tags follow the backend's camelCase field names (releaseYear,
coverArtRelativePath, profilePictureRelativePath). Score bounds are
exported as ScoreMin and ScoreMax.
*/
package models
